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

import "github.com/jetsetilly/gopherc64/snapshot"

// SnapshotLabel implements the snapshot.Component interface.
func (vic *VIC) SnapshotLabel() string {
	return "vic"
}

// SnapshotItems implements the snapshot.Component interface. The chip
// model is configuration and survives a reset; everything else is live
// state.
func (vic *VIC) SnapshotItems() []snapshot.Item {
	vic.scratchChipModel = uint8(vic.chipModel)
	vic.scratchLine = uint32(vic.line)
	vic.scratchRasterCycle = uint8(vic.rasterCycle)
	vic.scratchXCounter = uint32(vic.p.XCounter)

	items := []snapshot.Item{
		{Ptr: &vic.scratchChipModel, KeepOnReset: true},
		{Ptr: vic.iomem[:]},

		{Ptr: &vic.scratchXCounter},
		{Ptr: &vic.p.YCounter},
		{Ptr: &vic.p.MainFrameFF},
		{Ptr: &vic.p.VerticalFrameFF},
		{Ptr: &vic.p.GData},
		{Ptr: &vic.p.GCharacter},
		{Ptr: &vic.p.GColor},
		{Ptr: &vic.p.CTRL1},
		{Ptr: &vic.p.CTRL2},
		{Ptr: &vic.p.SpriteXExpand},
		{Ptr: &vic.p.SpriteOnOff},
		{Ptr: &vic.p.SpriteMulticolor},
		{Ptr: &vic.p.SpritePriority},

		{Ptr: &vic.bp.BorderColor},
		{Ptr: vic.cp.BackgroundColor[:]},
		{Ptr: vic.sp.SpriteColor[:]},
		{Ptr: &vic.sp.SpriteExtraColor1},
		{Ptr: &vic.sp.SpriteExtraColor2},

		{Ptr: &vic.scratchLine},
		{Ptr: &vic.scratchRasterCycle},
		{Ptr: &vic.yCounter},
		{Ptr: &vic.yCounterEqualsIRQLine},
		{Ptr: &vic.registerVC},
		{Ptr: &vic.registerVCBASE},
		{Ptr: &vic.registerRC},
		{Ptr: &vic.registerVMLI},
		{Ptr: &vic.refreshCounter},
		{Ptr: vic.characterSpace[:]},
		{Ptr: vic.colorSpace[:]},
		{Ptr: &vic.addrBus},
		{Ptr: &vic.dataBus},
		{Ptr: &vic.bankAddr},
		{Ptr: &vic.vblank},
		{Ptr: &vic.badLineCondition},
		{Ptr: &vic.denWasSetInRasterline30},
		{Ptr: &vic.displayState},
		{Ptr: &vic.verticalFrameFFsetCond},
		{Ptr: &vic.verticalFrameFFclearCond},
		{Ptr: &vic.baLow},
		{Ptr: &vic.baWentLowAt},
		{Ptr: &vic.cycles},
		{Ptr: vic.mc[:]},
		{Ptr: vic.mcbase[:]},
		{Ptr: &vic.spriteOnOff},
		{Ptr: &vic.spriteDmaOnOff},
		{Ptr: &vic.expansionFF},
		{Ptr: &vic.clearedBitsInD017},
		{Ptr: &vic.isFirstDMACycle},
		{Ptr: &vic.isSecondDMACycle},
		{Ptr: &vic.lightpenIRQhasOccurred},
	}

	for i := range vic.spritePtr {
		items = append(items, snapshot.Item{Ptr: &vic.spritePtr[i]})
	}
	for i := range vic.p.SpriteX {
		items = append(items, snapshot.Item{Ptr: &vic.p.SpriteX[i]})
	}

	return items
}

// PostSnapshotRestore implements the snapshot.Restorer interface.
func (vic *VIC) PostSnapshotRestore() error {
	vic.chipModel = ChipModel(vic.scratchChipModel)
	vic.line = int(vic.scratchLine)
	vic.rasterCycle = int(vic.scratchRasterCycle)
	vic.p.XCounter = int(vic.scratchXCounter)
	return nil
}
