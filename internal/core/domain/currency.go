package domain

import "strings"

// CurrencyInfo is the static metadata for one supported currency.
// UnitDivisor is 100 for currencies the upstream quotes per 100 units
// (the table drives the conversion; it is never inferred from the quote).
type CurrencyInfo struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	UnitDivisor int    `json:"unitDivisor"`
	FlagPath    string `json:"flagPath"`
}

// currencyRegistry is built once and never mutated afterwards.
var currencyRegistry = map[string]CurrencyInfo{
	"USD": {Code: "USD", Name: "미국 달러", UnitDivisor: 1, FlagPath: "flags/us.png"},
	"JPY": {Code: "JPY", Name: "일본 엔", UnitDivisor: 100, FlagPath: "flags/jp.png"},
	"EUR": {Code: "EUR", Name: "유로", UnitDivisor: 1, FlagPath: "flags/eu.png"},
	"GBP": {Code: "GBP", Name: "영국 파운드", UnitDivisor: 1, FlagPath: "flags/gb.png"},
	"CNH": {Code: "CNH", Name: "중국 위안", UnitDivisor: 1, FlagPath: "flags/cn.png"},
	"CHF": {Code: "CHF", Name: "스위스 프랑", UnitDivisor: 1, FlagPath: "flags/ch.png"},
	"CAD": {Code: "CAD", Name: "캐나다 달러", UnitDivisor: 1, FlagPath: "flags/ca.png"},
	"AUD": {Code: "AUD", Name: "호주 달러", UnitDivisor: 1, FlagPath: "flags/au.png"},
	"NZD": {Code: "NZD", Name: "뉴질랜드 달러", UnitDivisor: 1, FlagPath: "flags/nz.png"},
	"HKD": {Code: "HKD", Name: "홍콩 달러", UnitDivisor: 1, FlagPath: "flags/hk.png"},
	"SGD": {Code: "SGD", Name: "싱가포르 달러", UnitDivisor: 1, FlagPath: "flags/sg.png"},
	"THB": {Code: "THB", Name: "태국 바트", UnitDivisor: 1, FlagPath: "flags/th.png"},
	"IDR": {Code: "IDR", Name: "인도네시아 루피아", UnitDivisor: 100, FlagPath: "flags/id.png"},
	"MYR": {Code: "MYR", Name: "말레이시아 링깃", UnitDivisor: 1, FlagPath: "flags/my.png"},
	"SEK": {Code: "SEK", Name: "스웨덴 크로나", UnitDivisor: 1, FlagPath: "flags/se.png"},
	"DKK": {Code: "DKK", Name: "덴마크 크로네", UnitDivisor: 1, FlagPath: "flags/dk.png"},
	"NOK": {Code: "NOK", Name: "노르웨이 크로네", UnitDivisor: 1, FlagPath: "flags/no.png"},
	"SAR": {Code: "SAR", Name: "사우디 리얄", UnitDivisor: 1, FlagPath: "flags/sa.png"},
	"KWD": {Code: "KWD", Name: "쿠웨이트 디나르", UnitDivisor: 1, FlagPath: "flags/kw.png"},
	"BHD": {Code: "BHD", Name: "바레인 디나르", UnitDivisor: 1, FlagPath: "flags/bh.png"},
	"AED": {Code: "AED", Name: "아랍에미리트 디르함", UnitDivisor: 1, FlagPath: "flags/ae.png"},
	"BND": {Code: "BND", Name: "브루나이 달러", UnitDivisor: 1, FlagPath: "flags/bn.png"},
}

// LookupCurrency returns the registry entry for a canonical 3-letter code.
func LookupCurrency(code string) (CurrencyInfo, bool) {
	info, ok := currencyRegistry[strings.ToUpper(code)]
	return info, ok
}

// LookupCurrencyBySymbol resolves a provider currency symbol such as
// "JPY(100)" to its registry entry. The "(100)" suffix is display decoration
// on the provider side; the divisor applied comes from the registry table.
func LookupCurrencyBySymbol(symbol string) (CurrencyInfo, bool) {
	code := symbol
	if idx := strings.Index(code, "("); idx > 0 {
		code = code[:idx]
	}
	return LookupCurrency(strings.TrimSpace(code))
}

// SupportedCurrencyCodes lists every canonical code in the registry.
// Order is unspecified.
func SupportedCurrencyCodes() []string {
	codes := make([]string, 0, len(currencyRegistry))
	for code := range currencyRegistry {
		codes = append(codes, code)
	}
	return codes
}
