// Package periodic provides the element symbol table shared by input
// parsing and basis set loading.
//
// Symbols are stored in title case ("H", "He", "Fe") and indexed by
// atomic number 1..118. Every other package that touches element symbols
// normalizes them through this package so that lookups, cache paths, and
// error messages all agree on one spelling.
package periodic

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// symbols lists the known element symbols in title case, indexed by
// atomic number minus one.
var symbols = [...]string{
	"H", "He",
	"Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd",
	"In", "Sn", "Sb", "Te", "I", "Xe",
	"Cs", "Ba",
	"La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er",
	"Tm", "Yb", "Lu",
	"Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn",
	"Fr", "Ra",
	"Ac", "Th", "Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm",
	"Md", "No", "Lr",
	"Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds", "Rg", "Cn",
	"Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

// MaxZ is the highest known atomic number.
const MaxZ = len(symbols)

var zBySymbol = func() map[string]int {
	m := make(map[string]int, len(symbols))
	for i, s := range symbols {
		m[s] = i + 1
	}
	return m
}()

// Normalize converts sym to canonical title case ("fe" and "FE" both
// become "Fe") and reports whether the result names a known element.
// The normalized form is returned even when the element is unknown so
// callers can attribute errors to what the user wrote.
func Normalize(sym string) (string, bool) {
	if sym == "" {
		return "", false
	}
	norm := cases.Title(language.Und).String(strings.ToLower(sym))
	_, ok := zBySymbol[norm]
	return norm, ok
}

// Symbol returns the title-case symbol for atomic number z.
func Symbol(z int) (string, bool) {
	if z < 1 || z > MaxZ {
		return "", false
	}
	return symbols[z-1], true
}

// AtomicNumber returns the atomic number for a symbol already in
// canonical title case. Use Normalize first for user-supplied input.
func AtomicNumber(sym string) (int, bool) {
	z, ok := zBySymbol[sym]
	return z, ok
}
