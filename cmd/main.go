// cmd/main.go is the application entry point.
// Commands live in root.go; serve.go wires the layers and runs the server.
package main

func main() {
	Execute()
}
