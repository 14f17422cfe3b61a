// This file is part of GopherMSX.
//
// GopherMSX is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherMSX is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherMSX.  If not, see <https://www.gnu.org/licenses/>.

package paths

import (
	"os"
	"path/filepath"
)

// the base path for all resources. note that we don't use this value directly
// except in the getBasePath() function
const baseResourcePath = ".gophermsx"

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with operating system specific details. The last element
// of resource is treated as a filename. The directory it will be in is created
// if it does not exist.
func ResourcePath(resource ...string) (string, error) {
	var dir string
	var file string

	if len(resource) > 0 {
		dir = filepath.Join(resource[:len(resource)-1]...)
		file = resource[len(resource)-1]
	}

	base, err := getBasePath(dir)
	if err != nil {
		return "", err
	}

	return filepath.Join(base, file), nil
}

// getBasePath returns baseResourcePath joined with subPth. If baseResourcePath
// does not exist in the current directory then the user's config directory is
// used instead.
func getBasePath(subPth string) (string, error) {
	var pth string

	if _, err := os.Stat(baseResourcePath); err == nil {
		pth = filepath.Join(baseResourcePath, subPth)
	} else {
		cnf, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		pth = filepath.Join(cnf, baseResourcePath[1:], subPth)
	}

	if _, err := os.Stat(pth); err == nil {
		return pth, nil
	}

	if err := os.MkdirAll(pth, 0700); err != nil {
		return "", err
	}

	return pth, nil
}
