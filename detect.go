package texcat

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// KittySupported reports whether the attached terminal can display kitty
// graphics. Environment variables are the fast path; interactive terminals
// that give no environment hint get probed with a graphics query.
func KittySupported() bool {
	switch {
	case os.Getenv("KITTY_WINDOW_ID") != "":
		return true
	case strings.Contains(strings.ToLower(os.Getenv("TERM")), "kitty"):
		return true
	case os.Getenv("TERM_PROGRAM") == "ghostty":
		return true
	case os.Getenv("TERM_PROGRAM") == "WezTerm":
		return true
	case os.Getenv("TERM_PROGRAM") == "rio":
		return true
	}

	if inTmux() {
		// The env vars above describe the outer terminal when tmux
		// forwards them; without them the probe below would race
		// against tmux's own reply handling.
		return false
	}

	if fileInfo, _ := os.Stdin.Stat(); (fileInfo.Mode() & os.ModeCharDevice) == 0 {
		return false
	}
	return probeKittyGraphics()
}

// probeKittyGraphics transmits a 1x1 dummy image with a query action and
// waits for the terminal to echo the image id back.
func probeKittyGraphics() bool {
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return false
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	id := "42"
	fmt.Printf("\x1b_Gi=%s,s=1,v=1,a=q,t=d,f=24;AAAA\x1b\\", id)

	responseChan := make(chan bool, 1)
	go func() {
		buf := make([]byte, 256)
		n, err := os.Stdin.Read(buf)
		if err == nil && n > 0 {
			responseChan <- strings.Contains(string(buf[:n]), id)
		} else {
			responseChan <- false
		}
	}()

	select {
	case result := <-responseChan:
		return result
	case <-time.After(100 * time.Millisecond):
		return false
	}
}
