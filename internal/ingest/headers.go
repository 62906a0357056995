package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FileKind distinguishes the two upload shapes by header content.
type FileKind string

const (
	KindStock FileKind = "stock"
	KindSales FileKind = "sales"
)

// Canonical field names produced by the normalizer.
const (
	FieldSKU          = "sku"
	FieldCategory     = "category"
	FieldName         = "name"
	FieldOnHand       = "on_hand"
	FieldSupplierName = "supplier_name"
	FieldSupplierSKU  = "supplier_sku"
	FieldGroup        = "group"
	FieldQuantity     = "quantity"
	FieldUnit         = "unit"
)

// headerAliases maps known source header spellings to canonical field names.
// Keys are stored diacritic-folded and lower-cased; lookups fold the incoming
// header the same way, so both accented and plain spellings match.
var headerAliases = map[string]string{
	// shared
	"rodzaj":    FieldCategory,
	"kategoria": FieldCategory,
	"category":  FieldCategory,
	"symbol":    FieldSKU,
	"sku":       FieldSKU,
	"nazwa":     FieldName,
	"name":      FieldName,

	// stock snapshot
	"stan":                FieldOnHand,
	"stock":               FieldOnHand,
	"on hand":             FieldOnHand,
	"dostawca":            FieldSupplierName,
	"podstawowy dostawca": FieldSupplierName,
	"supplier":            FieldSupplierName,
	"symbol dostawcy":     FieldSupplierSKU,
	"symbol u dostawcy":   FieldSupplierSKU,
	"supplier sku":        FieldSupplierSKU,

	// sales batch
	"grupa":    FieldGroup,
	"group":    FieldGroup,
	"ilosc":    FieldQuantity,
	"quantity": FieldQuantity,
	"sztuki":   FieldQuantity,
	"j.m.":     FieldUnit,
	"jm":       FieldUnit,
	"uom":      FieldUnit,
	"unit":     FieldUnit,
}

// stockTokens classify a file as a stock snapshot when any header matches.
var stockTokens = map[string]bool{
	"stan":    true,
	"stock":   true,
	"on hand": true,
}

// quantityTokens is the synonym set searched (as substrings) when a sales
// file carries no exact quantity header.
var quantityTokens = []string{"ilosc", "quantity", "sztuki", "qty"}

var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldHeader trims, lower-cases and strips combining diacritics so that
// "Ilość" and "ilosc" compare equal. Polish ł carries no combining mark, so
// it is mapped explicitly.
func foldHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	if folded, _, err := transform.String(diacriticFolder, h); err == nil {
		h = folded
	}
	h = strings.Map(func(r rune) rune {
		if r == 'ł' {
			return 'l'
		}
		return r
	}, h)

	return h
}

// canonicalField resolves a raw header to its canonical field name.
func canonicalField(header string) (string, bool) {
	name, ok := headerAliases[foldHeader(header)]

	return name, ok
}
