// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/ValentineStone/cjc/cmd/cjc"

func main() {
	cmd.Execute()
}
