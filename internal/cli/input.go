package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

// promptNewPassword asks for a password twice without echoing and returns it
// once both entries match.
func promptNewPassword(w io.Writer) (string, error) {
	fmt.Fprint(w, "Enter  Password: ")
	first, err := readPassword()
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}

	fmt.Fprint(w, "Repeat Password: ")
	second, err := readPassword()
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	if len(first) == 0 {
		return "", errors.New("empty password")
	}
	return string(first), nil
}
