package usecase

import (
	"fmt"
	"math"

	domainErrors "github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/errors"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/pkg/txwire"
)

// PaymentMismatchError reports a transfer whose amount falls outside the
// accepted tolerance around the quoted price.
type PaymentMismatchError struct {
	ExpectedSol float64
	PaidSol     float64
}

func (e *PaymentMismatchError) Error() string {
	return fmt.Sprintf("payment amount %.9f SOL does not match expected %.9f SOL", e.PaidSol, e.ExpectedSol)
}

// PaymentVerifier checks that a signed transaction carries a native
// transfer of the quoted amount.
type PaymentVerifier struct {
	tolerance float64
}

// NewPaymentVerifier constructs PaymentVerifier with the given relative
// tolerance: a payment is accepted when it falls within
// tolerance*expected of the expected amount.
func NewPaymentVerifier(tolerance float64) *PaymentVerifier {
	return &PaymentVerifier{tolerance: tolerance}
}

// Verify inspects the transaction for a system transfer and compares the
// lamport amount against the expected SOL price. A transaction without
// any transfer instruction yields ErrNoTransfer; a transfer outside the
// tolerance band yields PaymentMismatchError. Free orders never reach
// the verifier, so the expected amount is always positive.
func (v *PaymentVerifier) Verify(tx *txwire.Transaction, expectedSol float64) error {
	lamports, ok := tx.NativeTransferLamports()
	if !ok {
		return domainErrors.ErrNoTransfer
	}

	paidSol := float64(lamports) / txwire.LamportsPerSol
	if math.Abs(paidSol-expectedSol) > v.tolerance*expectedSol {
		return &PaymentMismatchError{ExpectedSol: expectedSol, PaidSol: paidSol}
	}

	return nil
}
