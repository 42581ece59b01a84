// This file is part of GopherC64.
//
// GopherC64 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherC64 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherC64.  If not, see <https://www.gnu.org/licenses/>.

package curated_test

import (
	"testing"

	"github.com/jetsetilly/gopherc64/curated"
	"github.com/jetsetilly/gopherc64/test"
)

func TestDeduplication(t *testing.T) {
	inner := curated.Errorf("vic: %v", "bank out of range")
	outer := curated.Errorf("vic: %v", inner)
	test.Equate(t, outer.Error(), "vic: bank out of range")
}

func TestHas(t *testing.T) {
	inner := curated.Errorf(curated.InvalidArchive, "short file")
	outer := curated.Errorf("loader: %v", inner)

	test.Equate(t, curated.Is(outer, curated.InvalidArchive), false)
	test.Equate(t, curated.Has(outer, curated.InvalidArchive), true)
	test.Equate(t, curated.Has(inner, curated.InvalidArchive), true)
	test.Equate(t, curated.IsAny(outer), true)
}
