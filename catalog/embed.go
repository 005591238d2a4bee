// Package catalog embeds the deckhand distribution payload: the agent
// manifest, persona documents, skill bundles, and support scripts/hooks.
package catalog

import "embed"

// FS is the embedded catalog tree. Paths are relative to this package
// directory: agents.json, agents/<name>.md, skills/<name>/SKILL.md,
// scripts/*.sh, hooks/*.sh.
//
//go:embed agents.json all:agents all:skills all:scripts all:hooks
var FS embed.FS
