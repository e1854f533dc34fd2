package eth

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zeebo/errs"
)

// ParseDenom parses a denomination name. Names are case insensitive.
func ParseDenom(s string) (Denom, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "WEI":
		return WEI, nil
	case "GWEI":
		return GWEI, nil
	case "ETH", "ETHER":
		return ETH, nil
	}
	return 0, errs.New("unsupported denomination %q (want wei, gwei or eth)", s)
}

// Unit is an amount held in WEI and displayed in a chosen denomination.
type Unit struct {
	wei   decimal.Decimal
	denom Denom
}

func UnitFromBigInt(wei *big.Int, denom Denom) Unit {
	return Unit{wei: decimal.NewFromBigInt(wei, 0), denom: denom}
}

func (u Unit) IsZero() bool {
	return u.wei.IsZero()
}

// Decimal returns the amount in the unit's denomination.
func (u Unit) Decimal() decimal.Decimal {
	return u.wei.Shift(-int32(u.denom))
}

func (u Unit) String() string {
	return fmt.Sprintf("%s%s", u.Decimal(), u.denom)
}

// Denom is the power of ten a denomination is worth in WEI.
type Denom int32

const (
	WEI  Denom = 0
	GWEI Denom = 9
	ETH  Denom = 18
)

func (d Denom) String() string {
	switch d {
	case WEI:
		return "wei"
	case GWEI:
		return "gwei"
	case ETH:
		return "eth"
	}
	return ""
}

func (d Denom) MarshalText() ([]byte, error) {
	if d.String() == "" {
		return nil, errs.New("invalid denomination %d", int32(d))
	}
	return []byte(d.String()), nil
}

func (d *Denom) UnmarshalText(b []byte) error {
	v, err := ParseDenom(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
