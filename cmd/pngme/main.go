/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ssargent/pngme/cmd/pngme/cmd"

func main() {
	cmd.Execute()
}
