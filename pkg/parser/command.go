package parser

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"euclid-dex/pkg/types"
)

// Pattern: <amount> <source_token> TO <dest_token>
// Matches: "1 OSMO TO ATOM", "1.5 NIB TO UST", "100.25 STARS TO NTRN"
var swapPattern = regexp.MustCompile(`^(\d+\.?\d*)\s+([A-Z0-9._/-]+)\s+TO\s+([A-Z0-9._/-]+)$`)

// ParseSwapCommand parses a natural language swap command
// Examples:
//   - "swap 1 OSMO to ATOM"
//   - "1.5 nib to ust"
func ParseSwapCommand(command string) (*types.SwapIntent, error) {
	command = strings.Join(strings.Fields(strings.ToUpper(command)), " ")
	command = strings.TrimPrefix(command, "SWAP ")

	matches := swapPattern.FindStringSubmatch(command)
	if matches == nil {
		return nil, errors.New("invalid swap command format. Expected: 'swap <amount> <token> to <token>' (e.g., 'swap 1 OSMO to ATOM')")
	}

	intent := &types.SwapIntent{
		Amount:      matches[1],
		SourceToken: matches[2],
		DestToken:   matches[3],
	}
	if err := ValidateSwapIntent(intent); err != nil {
		return nil, err
	}
	return intent, nil
}

// ValidateSwapIntent validates that a swap intent has all required fields
func ValidateSwapIntent(intent *types.SwapIntent) error {
	if intent.Amount == "" {
		return errors.New("amount is required")
	}
	if intent.SourceToken == "" {
		return errors.New("source token is required")
	}
	if intent.DestToken == "" {
		return errors.New("destination token is required")
	}
	if intent.SourceToken == intent.DestToken {
		return errors.Errorf("cannot swap %s to itself", intent.SourceToken)
	}
	return nil
}

// WireToken converts a display symbol to the lowercase id the API uses
func WireToken(symbol string) string {
	return strings.ToLower(strings.TrimSpace(symbol))
}
