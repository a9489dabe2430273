// Package scaffold holds the template data shared by the per-package
// generators. Each subpackage (workspace, contracts, frontend, backend,
// scripts) embeds its own templates and turns a Project into a list of
// generator.Operations; nothing here touches disk.
package scaffold

import "strconv"

// Project is the data every template renders against. Values are fixed
// before generation starts, so rendering the same Project twice produces
// byte-identical output.
type Project struct {
	Name      string  // Project/collection name as given on the command line
	Symbol    string  // Token symbol (e.g. "MFT")
	MaxSupply int     // Collection size
	MintPrice float64 // Mint price in ether
	Network   string  // Default deploy network (e.g. "sepolia")
	Minimal   bool    // True when frontend/backend are skipped
}

// MintPriceEther renders the mint price as a Solidity-friendly decimal
// literal ("0.05"), avoiding float formatting surprises in templates.
func (p Project) MintPriceEther() string {
	return strconv.FormatFloat(p.MintPrice, 'f', -1, 64)
}
