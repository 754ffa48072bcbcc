/*
Copyright © 2025 The Zer3aZ Authors
*/
package main

import "github.com/zer3az/chatbot/cmd"

func main() {
	cmd.Execute()
}
