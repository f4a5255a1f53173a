/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/kirankamble1523/Task-Manager-App/cmd"

func main() {
	cmd.Execute()
}
