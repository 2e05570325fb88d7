package pgconv

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidNumeric = errors.New("invalid numeric value in pgtype.Numeric")
	ErrNullValue      = errors.New("unexpected NULL value")
)

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func StringFromPgtype(pt pgtype.Text) (string, error) {
	if !pt.Valid {
		return "", ErrNullValue
	}
	return pt.String, nil
}

func TimeFromPgtype(pt pgtype.Timestamptz) (time.Time, error) {
	if !pt.Valid {
		return time.Time{}, ErrNullValue
	}
	return pt.Time.UTC(), nil
}

func TimeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

// DecimalFromNumeric keeps the exact coefficient and exponent; NaN and
// infinities have no decimal representation.
func DecimalFromNumeric(pn pgtype.Numeric) (decimal.Decimal, error) {
	if !pn.Valid {
		return decimal.Decimal{}, ErrNullValue
	}
	if pn.NaN || pn.InfinityModifier != pgtype.Finite || pn.Int == nil {
		return decimal.Decimal{}, ErrInvalidNumeric
	}
	return decimal.NewFromBigInt(pn.Int, pn.Exp), nil
}

func DecimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}
