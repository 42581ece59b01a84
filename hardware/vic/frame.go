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

package vic

// The two frame flipflops gate pixel output to the border color: the
// main flipflop covers the horizontal borders, the vertical flipflop
// the upper and lower ones.

// checkVerticalFrameFF evaluates the set and clear conditions of the
// vertical flipflop against the current rasterline. Runs every cycle.
func (vic *VIC) checkVerticalFrameFF() {
	if vic.yCounter == vic.upperComparisonValue() && vic.denBit() {
		vic.verticalFrameFFclearCond = true
	}
	if vic.verticalFrameFFclearCond {
		vic.p.VerticalFrameFF = false
	}

	if vic.yCounter == vic.lowerComparisonValue() {
		vic.verticalFrameFFsetCond = true
	}
	// the set condition takes effect at the end of the line and in
	// cycle 1
}

// the main flipflop cannot clear while the vertical flipflop holds
func (vic *VIC) clearMainFrameFF() {
	if !vic.p.VerticalFrameFF && !vic.verticalFrameFFsetCond {
		vic.p.MainFrameFF = false
	}
}

// checkFrameFlipflopsLeft clears the main flipflop when the X
// coordinate reaches the left comparison value. The comparison value of
// the calling cycle is passed in; only the one selected by CSEL acts.
func (vic *VIC) checkFrameFlipflopsLeft(comparisonValue int) {
	if comparisonValue == vic.leftComparisonValue() {
		vic.clearMainFrameFF()
	}
}

// checkFrameFlipflopsRight sets the main flipflop when the X coordinate
// reaches the right comparison value.
func (vic *VIC) checkFrameFlipflopsRight(comparisonValue int) {
	if comparisonValue == vic.rightComparisonValue() {
		vic.p.MainFrameFF = true
	}
}
