package common

import (
	"strings"

	"github.com/charmbracelet/log"
)

// If given `value` is not empty, returns it. Else `defaultValue` will be returned.
func GetStrOr(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	} else {
		return value
	}
}

// GetIntOr takes two int value, if the first value is greater than zero, then
// this function return this value, else the second value will be returned.
func GetIntOr(value, defaultValue int) int {
	if value <= 0 {
		return defaultValue
	} else {
		return value
	}
}

// SetupLogLevel adjusts global log level according to verbosity flags. Quiet
// wins over verbose when both are given.
func SetupLogLevel(verbose, quiet bool) {
	if quiet {
		log.SetLevel(log.WarnLevel)
	} else if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// logBannerMsg prints a block of message to log.
func LogBannerMsg(msgs []string, paddingLen int) {
	maxLen := 0
	for i := range msgs {
		l := len(msgs[i])
		if l > maxLen {
			maxLen = l
		}
	}

	padding := strings.Repeat(" ", paddingLen)
	stem := strings.Repeat("─", maxLen+paddingLen*2)

	log.Info("╭" + stem + "╮")
	for _, line := range msgs {
		log.Info("│" + padding + line + strings.Repeat(" ", maxLen-len(line)) + padding + " ")
	}
	log.Info("╰" + stem + "╯")
}
