package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func vatPtr(v float64) *float64 { return &v }

func TestPriceVATConversion(t *testing.T) {
	t.Run("net price adds vat on gross", func(t *testing.T) {
		price := Price{Amount: 100, VATMode: VATNet, VATPercent: vatPtr(7.7)}
		assert.InDelta(t, 107.7, price.ToGross(), 0.0001)
		assert.Equal(t, 100.0, price.ToNet())
	})

	t.Run("gross price removes vat on net", func(t *testing.T) {
		price := Price{Amount: 107.7, VATMode: VATGross, VATPercent: vatPtr(7.7)}
		assert.InDelta(t, 100.0, price.ToNet(), 0.0001)
		assert.Equal(t, 107.7, price.ToGross())
	})

	t.Run("no vat percent means gross equals net", func(t *testing.T) {
		price := Price{Amount: 50, VATMode: VATNet}
		assert.Equal(t, 50.0, price.ToGross())
		assert.Equal(t, 50.0, price.ToNet())
	})
}
