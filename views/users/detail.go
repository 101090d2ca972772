package users

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/loganlanou/reqres-dashboard/internal/users"
	"github.com/loganlanou/reqres-dashboard/views/helpers"
	"github.com/loganlanou/reqres-dashboard/views/layout"
)

func Detail(u users.Record) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := helpers.NewWriter(w)

		h.Render(ctx, layout.BackLink("/dashboard"))
		h.Raw(`<h1 class="mb-4 text-2xl font-bold">User Details</h1><div class="rounded border bg-white p-4 shadow"><img src="`)
		h.URL(u.Avatar)
		h.Raw(`" alt="`)
		h.Text(u.FullName())
		h.Raw(`" class="mb-4 h-32 w-32 rounded-full"><h2 class="text-lg font-semibold">`)
		h.Text(u.FullName())
		h.Raw(`</h2><p class="text-gray-600">`)
		h.Text(u.Email)
		h.Raw(`</p><div class="mt-4 flex gap-4"><a class="`, helpers.Button(helpers.ButtonPrimary), `" href="`)
		h.URL(helpers.EditUserPath(u.ID))
		h.Raw(`">Update</a><a class="`, helpers.Button(helpers.ButtonDanger), `" href="`)
		h.URL(helpers.DeleteUserPath(u.ID))
		h.Raw(`">Delete</a></div></div>`)

		return h.Err()
	})
}

// Message renders a page that only carries a status line, such as a
// failed load or a missing user.
func Message(text string, isError bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := helpers.NewWriter(w)

		h.Render(ctx, layout.BackLink("/dashboard"))
		cls := "p-6 text-gray-500"
		if isError {
			cls = helpers.Classes(cls, "text-red-500")
		}
		h.Raw(`<div class="`, cls, `">`)
		h.Text(text)
		h.Raw(`</div>`)

		return h.Err()
	})
}

func DeleteConfirm(id int) templ.Component {
	return layout.Confirm(
		"Confirm Deletion",
		"Are you sure you want to delete this item? This action cannot be undone.",
		helpers.DeleteUserPath(id),
		"Delete",
		helpers.UserPath(id),
	)
}
