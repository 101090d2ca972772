package helpers

import twmerge "github.com/Oudwins/tailwind-merge-go"

const (
	ButtonBase      = "px-4 py-2 rounded text-white"
	ButtonPrimary   = "bg-blue-500 hover:bg-blue-600"
	ButtonDanger    = "bg-red-500 hover:bg-red-600"
	ButtonSecondary = "bg-gray-500 hover:bg-gray-600"
	ButtonPager     = "bg-gray-300 text-black hover:bg-gray-400"

	InputBase  = "mt-1 block w-full px-4 py-2 border border-gray-300 rounded-md shadow-sm focus:ring-blue-500 focus:border-blue-500 sm:text-sm"
	InputError = "border-red-500"
)

// Classes merges Tailwind class lists; later lists win on conflicts.
func Classes(lists ...string) string {
	return twmerge.Merge(lists...)
}

func Button(variant string, extra ...string) string {
	return Classes(append([]string{ButtonBase, variant}, extra...)...)
}

// Input returns the text input classes, highlighted when invalid.
func Input(invalid bool) string {
	if invalid {
		return Classes(InputBase, InputError)
	}
	return InputBase
}

// PageButton styles a pagination link, highlighting the current page.
func PageButton(current bool) string {
	if current {
		return Classes(ButtonBase, "mx-1 bg-blue-500")
	}
	return Classes(ButtonBase, "mx-1 bg-gray-200 text-black hover:bg-gray-300")
}
