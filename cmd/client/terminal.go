package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/uma-arai/sbcntr-restaurant-client/internal/model"
	"golang.org/x/term"
)

// terminal は画面の遷移・通知・確認を端末の入出力で行います
type terminal struct {
	in        *bufio.Reader
	inFile    *os.File
	out       io.Writer
	assumeYes bool

	// 直近の遷移先
	location string
	editID   model.ID
}

func newTerminal(in io.Reader, out io.Writer) *terminal {
	t := &terminal{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok {
		t.inFile = f
	}
	return t
}

func (t *terminal) ToLogin() {
	t.location = "login"
	fmt.Fprintln(t.out, "Please log in: client login -user-id <id> -token <token>")
}

func (t *terminal) Back() {
	t.location = "back"
}

func (t *terminal) ToEditReservation(reservationID model.ID) {
	t.location = "edit"
	t.editID = reservationID
}

func (t *terminal) Notify(n model.Notification) {
	fmt.Fprintln(t.out, n.String())
}

// Confirm は y/yes の入力で承認とみなします
func (t *terminal) Confirm(title, message string) bool {
	if t.assumeYes {
		return true
	}
	fmt.Fprintf(t.out, "%s: %s [y/N]: ", title, message)
	answer, err := t.readLine()
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// readPassword は端末であればエコーせずに読み込みます
func (t *terminal) readPassword(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	if t.inFile != nil && term.IsTerminal(int(t.inFile.Fd())) {
		b, err := term.ReadPassword(int(t.inFile.Fd()))
		fmt.Fprintln(t.out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}
	return t.readLine()
}

func (t *terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
