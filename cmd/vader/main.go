// Command vader translates Vader source into other languages and frameworks.
package main

import "vaderlang/vader/cmd/vader/commands"

func main() {
	commands.Execute()
}
