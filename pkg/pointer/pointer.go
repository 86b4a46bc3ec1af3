// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides generic helpers for optional values.

Request shapes use pointers to tell an absent JSON field from its zero value
(a missing "preco" versus a price of 0).
*/
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}
