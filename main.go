package main

import "github.com/Enysssss/TP-Stacktim-Enys-Tchenar/internal/initializers"

func main() {
	initializers.RunStacktim()
}
