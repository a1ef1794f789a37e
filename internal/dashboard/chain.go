package dashboard

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/thanhnp/chain-dns-dashboard/internal/models"
	"github.com/thanhnp/chain-dns-dashboard/internal/rpc"
	"github.com/thanhnp/chain-dns-dashboard/internal/view"
)

// hashPreview is how many leading characters of a hash are displayed
const hashPreview = 20

const genesisEntry = "No domains in this block (Genesis)"

// LoadBlockchain refreshes the chain view and the chain-length indicator
func (d *Dashboard) LoadBlockchain() {
	d.post(d._loadBlockchain)
}

func (d *Dashboard) _loadBlockchain() {
	d.page.Chain.ShowNote("Loading blockchain...", "pulse")
	dispatch(d, d.ledger.Chain, d._renderBlockchain)
}

func (d *Dashboard) _renderBlockchain(out rpc.Outcome[models.ChainSnapshot]) {
	switch out.Status {
	case rpc.StatusSuccess:
		d.page.ChainLength.Set(strconv.Itoa(out.Value.Length), view.ToneNeutral)
		if len(out.Value.Blocks) == 0 {
			d.page.Chain.ShowNote("No blocks in chain yet", "empty")
		} else {
			d.page.Chain.ShowBlocks(renderBlocks(out.Value.Blocks))
		}
		d.sink.Log(fmt.Sprintf("Loaded blockchain with %d blocks", out.Value.Length))
	case rpc.StatusReported:
		d.page.Chain.ShowNote("Error loading blockchain", "error")
		d.sink.Log("Error loading blockchain")
	case rpc.StatusNetwork:
		d.page.Chain.ShowNote("Error connecting to server", "error")
		d.sink.Log("Error: " + out.Err.Error())
	}
}

// renderBlocks returns one card per block, newest first. blocks is not modified.
func renderBlocks(blocks []models.Block) []view.BlockCard {
	newestFirst := slices.Clone(blocks)
	slices.Reverse(newestFirst)

	cards := make([]view.BlockCard, 0, len(newestFirst))
	for _, b := range newestFirst {
		card := view.BlockCard{
			Title:     fmt.Sprintf("Block #%d", b.Index),
			Timestamp: b.Timestamp,
			Hash:      truncateHash(b.Hash),
			PrevHash:  truncateHash(b.PreviousHash),
		}
		if b.IsGenesis() {
			card.Entries = []string{genesisEntry}
		} else {
			card.Entries = make([]string, 0, len(b.Domains))
			for _, rec := range b.Domains {
				card.Entries = append(card.Entries, fmt.Sprintf("%s → %s (Owner: %s)", rec.DomainName, rec.IPAddress, rec.Owner))
			}
		}
		cards = append(cards, card)
	}
	return cards
}

// truncateHash is display-only; never compare its output
func truncateHash(hash string) string {
	if r := []rune(hash); len(r) > hashPreview {
		hash = string(r[:hashPreview])
	}
	return hash + "..."
}
