package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thanhnp/chain-dns-dashboard/internal/view"
)

func TestPrintSnapshot(t *testing.T) {
	p := view.NewPage()
	p.Connection.Set("Connected to server (API 1.0.0)", view.ToneSuccess)
	p.ChainLength.Set("2", view.ToneNeutral)
	p.Domains.Replace(view.Row{Cells: []string{"alice.block", "10.0.0.5", "alice", "2024-01-01T00:00:00Z"}})
	p.Chain.ShowBlocks([]view.BlockCard{
		{Title: "Block #1", Hash: "abc...", PrevHash: "def...", Entries: []string{"alice.block → 10.0.0.5 (Owner: alice)"}},
		{Title: "Block #0", Hash: "def...", PrevHash: "0...", Entries: []string{"No domains in this block (Genesis)"}},
	})
	p.Terminal.Append(view.LogLine{Text: "Loaded 1 domains"})

	var buf bytes.Buffer
	printSnapshot(&buf, p.Snapshot())
	out := buf.String()

	assert.Contains(t, out, "Connected to server (API 1.0.0)")
	assert.Contains(t, out, "Chain length: 2")
	assert.Contains(t, out, "alice.block")
	assert.Contains(t, out, "Block #1")
	assert.Contains(t, out, "Loaded 1 domains")
}

func TestPrintSnapshotNotes(t *testing.T) {
	p := view.NewPage()
	p.Domains.Replace(view.Row{Note: "No domains registered yet", Class: "empty"})
	p.Chain.ShowNote("Error connecting to server", "error")

	var buf bytes.Buffer
	printSnapshot(&buf, p.Snapshot())

	assert.Contains(t, buf.String(), "No domains registered yet")
	assert.Contains(t, buf.String(), "Error connecting to server")
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCmd()

	serve, _, err := root.Find([]string{"serve"})
	assert.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())

	snapshot, _, err := root.Find([]string{"snapshot"})
	assert.NoError(t, err)
	assert.Equal(t, "snapshot", snapshot.Name())

	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}
