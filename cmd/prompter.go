package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattsolo1/ccpanel/pkg/mutate"
)

// terminalPrompter resolves collisions interactively on stdin. --force
// flags bypass it by answering overwrite unconditionally.
type terminalPrompter struct {
	force bool
	in    *bufio.Reader
}

func newTerminalPrompter(force bool) *terminalPrompter {
	return &terminalPrompter{force: force, in: bufio.NewReader(os.Stdin)}
}

func (p *terminalPrompter) ResolveCollision(target string, allowRename bool) (mutate.CollisionDecision, string, error) {
	if p.force {
		return mutate.CollisionOverwrite, "", nil
	}

	options := "[o]verwrite / [c]ancel"
	if allowRename {
		options = "[o]verwrite / [r]ename / [c]ancel"
	}
	fmt.Fprintf(os.Stderr, "%s already exists. %s: ", target, options)

	line, err := p.in.ReadString('\n')
	if err != nil {
		return mutate.CollisionCancel, "", nil
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "o", "overwrite":
		return mutate.CollisionOverwrite, "", nil
	case "r", "rename":
		if !allowRename {
			return mutate.CollisionCancel, "", nil
		}
		fmt.Fprint(os.Stderr, "new name: ")
		name, err := p.in.ReadString('\n')
		if err != nil {
			return mutate.CollisionCancel, "", nil
		}
		return mutate.CollisionRename, strings.TrimSpace(name), nil
	}
	return mutate.CollisionCancel, "", nil
}

// confirm asks a yes/no question on stderr, defaulting to no.
func confirm(question string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
