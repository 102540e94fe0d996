package services

import "github.com/dustin/go-humanize"

// FormatSGD renders an amount as "$1,234.50".
func FormatSGD(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// FormatIDR renders an amount as "Rp1,235", without decimals.
func FormatIDR(v float64) string {
	if v < 0 {
		return "-Rp" + humanize.FormatFloat("#,###.", -v)
	}
	return "Rp" + humanize.FormatFloat("#,###.", v)
}
