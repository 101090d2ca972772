package users

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/loganlanou/reqres-dashboard/internal/users"
	"github.com/loganlanou/reqres-dashboard/views/helpers"
	"github.com/loganlanou/reqres-dashboard/views/layout"
)

// Edit renders the edit form for user id prefilled with form. errMsg is
// shown above the form after a failed save.
func Edit(id int, form users.Update, errMsg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := helpers.NewWriter(w)

		h.Render(ctx, layout.BackLink(helpers.UserPath(id)))
		h.Raw(`<h1 class="mb-4 text-2xl font-bold">Edit User</h1>`)

		if errMsg != "" {
			h.Raw(`<p role="alert" class="mb-4 text-red-500">`)
			h.Text(errMsg)
			h.Raw(`</p>`)
		}

		h.Raw(`<form method="post" action="`)
		h.URL(helpers.EditUserPath(id))
		h.Raw(`" class="rounded border bg-white p-4 shadow">`)

		input(h, "first_name", "First Name", "text", form.FirstName)
		input(h, "last_name", "Last Name", "text", form.LastName)
		input(h, "email", "Email", "email", form.Email)

		h.Raw(`<div class="flex gap-4"><button type="submit" class="`, helpers.Button(helpers.ButtonPrimary), `">Save Changes</button>`,
			`<a class="`, helpers.Button(helpers.ButtonSecondary), `" href="`)
		h.URL(helpers.UserPath(id))
		h.Raw(`">Cancel</a></div></form>`)

		return h.Err()
	})
}

func input(h *helpers.Writer, name, label, kind, value string) {
	h.Raw(`<div class="mb-4"><label for="`, name, `" class="block text-sm font-medium text-gray-700">`)
	h.Text(label)
	h.Raw(`</label><input type="`, kind, `" id="`, name, `" name="`, name, `" value="`)
	h.Text(value)
	h.Raw(`" class="`, helpers.Classes(helpers.InputBase, "shadow-none"), `"></div>`)
}
