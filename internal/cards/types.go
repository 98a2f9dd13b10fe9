// Package cards classifies payment card numbers by issuing network and
// validates them ahead of tokenization. Raw card numbers passed here are
// ephemeral; nothing in this package persists them.
package cards

import "regexp"

// Network identifies a card issuing network.
type Network string

const (
	Visa       Network = "visa"
	MasterCard Network = "mastercard"
	Amex       Network = "amex"
	DinersClub Network = "dinersclub"
	Discover   Network = "discover"
	JCB        Network = "jcb"
	UnionPay   Network = "unionpay"
	Maestro    Network = "maestro"
)

// SecurityCode describes the card's verification code field.
type SecurityCode struct {
	Name string
	Size int
}

// Type describes a card network: how to recognize its numbers and how to
// present them. Instances are immutable and enumerated at init.
type Type struct {
	Network     Network
	DisplayName string
	// Gaps are digit positions where a separator is displayed while typing.
	Gaps    []int
	Lengths []int
	Code    SecurityCode

	// prefixPattern matches partial input during typing; exactPattern
	// matches any completed number of the network. excludePrefixes carves
	// ranges back out of exactPattern (regexp has no negative lookahead).
	prefixPattern   *regexp.Regexp
	exactPattern    *regexp.Regexp
	excludePrefixes []string
}

// typeOrder is the fixed priority for classification; the first exact match
// wins when ranges could overlap (e.g. Discover vs Maestro on 6).
var typeOrder = []Network{
	Visa,
	MasterCard,
	Amex,
	DinersClub,
	Discover,
	JCB,
	UnionPay,
	Maestro,
}

var types = map[Network]*Type{
	Visa: {
		Network:       Visa,
		DisplayName:   "Visa",
		prefixPattern: regexp.MustCompile(`^4$`),
		exactPattern:  regexp.MustCompile(`^4\d*$`),
		Gaps:          []int{4, 8, 12},
		Lengths:       []int{16, 18, 19},
		Code:          SecurityCode{Name: "CVV", Size: 3},
	},
	MasterCard: {
		Network:       MasterCard,
		DisplayName:   "MasterCard",
		prefixPattern: regexp.MustCompile(`^(5|5[1-5]|2|22|222|222[1-9]|2[3-6]|27|27[0-2]|2720)$`),
		exactPattern:  regexp.MustCompile(`^(5[1-5]|222[1-9]|2[3-6]|27[0-1]|2720)\d*$`),
		Gaps:          []int{4, 8, 12},
		Lengths:       []int{16},
		Code:          SecurityCode{Name: "CVC", Size: 3},
	},
	Amex: {
		Network:       Amex,
		DisplayName:   "American Express",
		prefixPattern: regexp.MustCompile(`^(3|34|37)$`),
		exactPattern:  regexp.MustCompile(`^3[47]\d*$`),
		Gaps:          []int{4, 10},
		Lengths:       []int{15},
		Code:          SecurityCode{Name: "CID", Size: 4},
	},
	DinersClub: {
		Network:       DinersClub,
		DisplayName:   "Diners Club",
		prefixPattern: regexp.MustCompile(`^(3|3[0689]|30[0-5])$`),
		exactPattern:  regexp.MustCompile(`^3(0[0-5]|[689])\d*$`),
		Gaps:          []int{4, 10},
		Lengths:       []int{14, 16, 19},
		Code:          SecurityCode{Name: "CVV", Size: 3},
	},
	Discover: {
		Network:       Discover,
		DisplayName:   "Discover",
		prefixPattern: regexp.MustCompile(`^(6|60|601|6011|65|64|64[4-9])$`),
		exactPattern:  regexp.MustCompile(`^(6011|65|64[4-9])\d*$`),
		Gaps:          []int{4, 8, 12},
		Lengths:       []int{16, 19},
		Code:          SecurityCode{Name: "CID", Size: 3},
	},
	JCB: {
		Network:       JCB,
		DisplayName:   "JCB",
		prefixPattern: regexp.MustCompile(`^(2|21|213|2131|1|18|180|1800|3|35)$`),
		exactPattern:  regexp.MustCompile(`^(2131|1800|35)\d*$`),
		Gaps:          []int{4, 8, 12},
		Lengths:       []int{16},
		Code:          SecurityCode{Name: "CVV", Size: 3},
	},
	UnionPay: {
		Network:         UnionPay,
		DisplayName:     "UnionPay",
		prefixPattern:   regexp.MustCompile(`^6(2\d*)?$`),
		exactPattern:    regexp.MustCompile(`^62\d*$`),
		excludePrefixes: []string{"62183", "62188", "62198", "62199", "62206", "6280", "6281"},
		Gaps:            []int{4, 8, 12},
		Lengths:         []int{16, 17, 18, 19},
		Code:            SecurityCode{Name: "CVN", Size: 3},
	},
	Maestro: {
		Network:       Maestro,
		DisplayName:   "Maestro",
		prefixPattern: regexp.MustCompile(`^(5|5[06-9]|6\d*)$`),
		exactPattern:  regexp.MustCompile(`^(5[06-9]|6[37])\d*$`),
		Gaps:          []int{4, 8, 12},
		Lengths:       []int{12, 13, 14, 15, 16, 17, 18, 19},
		Code:          SecurityCode{Name: "CVC", Size: 3},
	},
}

// TypeOf returns the descriptor for a network, or nil if unknown.
func TypeOf(network Network) *Type {
	return types[network]
}

// HasValidLength reports whether the number length is acceptable for the
// network. Length is validated separately from pattern classification.
func (t *Type) HasValidLength(number string) bool {
	for _, l := range t.Lengths {
		if len(number) == l {
			return true
		}
	}
	return false
}
