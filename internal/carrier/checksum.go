package carrier

// s10Weights are the UPU S10 check-digit weights applied to the eight serial
// digits of a postal tracking code.
var s10Weights = [8]int{8, 6, 4, 2, 3, 5, 9, 7}

// S10Checksum validates the check digit of a UPU S10 postal code
// (two letters, eight serial digits, one check digit, two-letter country
// suffix), the format used by Correios registered mail.
func S10Checksum(code string) bool {
	if len(code) != 13 {
		return false
	}

	digits := code[2:11]
	sum := 0
	for i := 0; i < 8; i++ {
		d := digits[i]
		if d < '0' || d > '9' {
			return false
		}
		sum += int(d-'0') * s10Weights[i]
	}

	check := 11 - sum%11
	switch sum % 11 {
	case 0:
		check = 5
	case 1:
		check = 0
	}

	last := digits[8]
	if last < '0' || last > '9' {
		return false
	}
	return int(last-'0') == check
}

// LuhnChecksum validates a numeric code with a trailing Luhn (mod 10) check
// digit, used by carriers that issue purely numeric tracking codes.
func LuhnChecksum(code string) bool {
	if len(code) < 2 {
		return false
	}

	sum := 0
	double := false
	for i := len(code) - 1; i >= 0; i-- {
		c := code[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}

	return sum%10 == 0
}
