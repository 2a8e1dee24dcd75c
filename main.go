/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/GaneshDurai90/EshopFlix-Microservices-sub001/cmd"

func main() {
	cmd.Execute()
}
