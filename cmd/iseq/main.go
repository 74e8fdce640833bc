// cmd/iseq/main.go
package main

import (
	"iseq/internal/app"
	"iseq/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
