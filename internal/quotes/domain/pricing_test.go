package domain

import "testing"

func TestFinalPriceAddsSurchargeAndSubtractsSubsidy(t *testing.T) {
	// Mono 450W: base ₹10,000.00, subsidy ₹500.00, surcharge 450 * ₹20.00
	got := FinalPriceCents(10000_00, 450, 500_00)
	want := int64(10000_00 + 450*20_00 - 500_00)
	if got != want {
		t.Fatalf("expected price %d, got %d", want, got)
	}
}

func TestFinalPriceIsDeterministic(t *testing.T) {
	first := FinalPriceCents(8750_00, 330, 1200_00)
	for i := 0; i < 10; i++ {
		if got := FinalPriceCents(8750_00, 330, 1200_00); got != first {
			t.Fatalf("expected stable price %d, got %d on call %d", first, got, i)
		}
	}
}

func TestFinalPriceZeroSubsidy(t *testing.T) {
	if got := FinalPriceCents(5000_00, 100, 0); got != 5000_00+100*20_00 {
		t.Fatalf("unexpected price %d", got)
	}
}
