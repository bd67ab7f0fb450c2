package action

import (
	"github.com/tonkeeper/tvmcore/cell"
	"github.com/tonkeeper/tvmcore/config"
)

// messageFwdFee computes the total forwarding fee and the "first part" of
// it the sender is charged up front, from a built message's cell-tree
// statistics (spec.md §4.4.1 step 7, "computes the forwarding fee from
// config.ForwardingPrices applied to the message's cell/bit counts").
func messageFwdFee(prices config.ForwardingPrices, stats cell.Stats) (total, firstPart uint64) {
	total = prices.ComputeFwdFee(uint64(stats.Bits), uint64(stats.Cells))
	firstPart = prices.GetFirstPart(total)
	return total, firstPart
}

// finePerCell is the per-cell penalty levied against a message that still
// does not fit after every layout rewrite has been tried (spec.md §4.4.1
// step 10, "a fine proportional to cell_price").
func finePerCell(prices config.ForwardingPrices) uint64 {
	return (prices.CellPrice >> 16) / 4
}
