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

package curated

// Patterns for error conditions that more than one package needs to
// identify. Packages keep purely local patterns to themselves.
const (
	// UnsupportedOpcode is returned by the CPU when it decodes an opcode
	// from the unstable set. The emulation thread halts.
	UnsupportedOpcode = "cpu: unsupported opcode (%#02x) at %#04x"

	// InvalidSnapshot covers magic and version mismatches in the V64
	// loader. The current machine state is preserved.
	InvalidSnapshot = "snapshot: %v"

	// InvalidArchive covers malformed D64/T64/NIB/PRG/P00 data. An
	// archive is validated completely before anything is loaded.
	InvalidArchive = "archive: %v"
)
