package services

// The cost tree is the aggregator's view of a project: a typed
// structure where every final price is a PricedItem leaf and grouping
// is explicit. Producers put one leaf per sellable line and keep
// roll-ups (subtotal, tax, total) out of the tree entirely, so a price
// can never be counted twice no matter how the tree is shaped.

// CostNode is one node of a cost tree.
type CostNode interface {
	costNode()
}

// PricedItem is a leaf carrying one final price. Quantity is already
// folded into Price by whichever sizing step produced it.
type PricedItem struct {
	Price float64
}

// CostGroup is a named collection of nodes.
type CostGroup map[string]CostNode

// CostList is an ordered collection of nodes.
type CostList []CostNode

func (PricedItem) costNode() {}
func (CostGroup) costNode()  {}
func (CostList) costNode()   {}

// AggregatePrice sums every PricedItem leaf in the tree exactly once.
// It knows nothing about which sizing component produced which node;
// the result depends only on the leaves, not the tree's shape or depth.
// A nil node contributes zero.
func AggregatePrice(node CostNode) float64 {
	switch n := node.(type) {
	case PricedItem:
		return n.Price
	case CostGroup:
		var sum float64
		for _, child := range n {
			sum += AggregatePrice(child)
		}
		return sum
	case CostList:
		var sum float64
		for _, child := range n {
			sum += AggregatePrice(child)
		}
		return sum
	default:
		return 0
	}
}
