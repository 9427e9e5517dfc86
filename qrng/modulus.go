package qrng

import (
	"fmt"
	"math/big"
)

// naSetMin is the smallest modulus candidate the decreasing search considers.
// 2 itself always qualifies (3 is prime, and 2 has order 2 mod 3), so the
// search can only exhaust for inputs below it.
const naSetMin = 2

// NASet returns the largest even m <= numBits such that m+1 is prime and 2
// has full multiplicative order modulo m+1, i.e. 2^(m/p) mod (m+1) != 1 for
// every prime factor p of m. The downstream linear extractor requires this
// algebraic structure of its modulus. If no candidate at or above the search
// floor qualifies, NASet returns ErrSearchExhausted.
func NASet(numBits int) (int, error) {
	m := numBits
	if m%2 != 0 {
		m--
	}
	for ; m >= naSetMin; m -= 2 {
		if !primeCheck(m + 1) {
			continue
		}
		if fullOrder(m) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: no valid modulus at or below %d", ErrSearchExhausted, numBits)
}

// fullOrder reports whether 2 has multiplicative order m modulo m+1.
func fullOrder(m int) bool {
	primes, _ := primeFactors(m)
	one := big.NewInt(1)
	two := big.NewInt(2)
	mod := big.NewInt(int64(m + 1))
	for _, p := range primes {
		exp := big.NewInt(int64(m / p))
		if new(big.Int).Exp(two, exp, mod).Cmp(one) == 0 {
			return false
		}
	}
	return true
}

// primeCheck reports whether num is prime, by trial division up to its square
// root.
func primeCheck(num int) bool {
	for i := 2; i*i <= num; i++ {
		if num%i == 0 {
			return false
		}
	}
	return true
}

// primeFactors factors num by trial division, returning its distinct prime
// factors alongside their multiplicities.
func primeFactors(num int) (primes, powers []int) {
	for i := 2; i*i <= num; i++ {
		if num%i != 0 {
			continue
		}
		primes = append(primes, i)
		powers = append(powers, 0)
		for num%i == 0 {
			num /= i
			powers[len(powers)-1]++
		}
	}
	if num > 1 {
		primes = append(primes, num)
		powers = append(powers, 1)
	}
	return primes, powers
}
