package users

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/loganlanou/reqres-dashboard/internal/session"
	"github.com/loganlanou/reqres-dashboard/internal/users"
	"github.com/loganlanou/reqres-dashboard/views/helpers"
)

type DashboardData struct {
	Profile    *session.Profile
	Users      []users.Record
	Page       int
	TotalPages int
	Error      string
}

func Dashboard(d DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := helpers.NewWriter(w)

		h.Raw(`<header class="mb-6 flex items-center justify-between">`)
		if p := d.Profile; p != nil {
			h.Raw(`<div class="flex items-center gap-4"><img src="`)
			h.URL(p.Avatar)
			h.Raw(`" alt="User Avatar" class="h-10 w-10 rounded-full"><div><p class="text-lg font-semibold">`)
			h.Text(p.Name)
			h.Raw(`</p><p class="text-sm text-gray-500">`)
			h.Text(p.Email)
			h.Raw(`</p></div></div>`)
		} else {
			h.Raw(`<div></div>`)
		}
		h.Raw(`<a href="/logout" class="`, helpers.Button(helpers.ButtonDanger), `">Logout</a></header>`,
			`<h1 class="mb-4 text-2xl font-bold">User List</h1>`)

		if d.Error != "" {
			h.Raw(`<p role="alert" class="mb-4 text-red-500">`)
			h.Text(d.Error)
			h.Raw(`</p>`)
		}

		h.Raw(`<div class="grid grid-cols-1 gap-4 md:grid-cols-2 lg:grid-cols-3">`)
		for _, u := range d.Users {
			card(h, u)
		}
		h.Raw(`</div>`)

		pager(h, d.Page, d.TotalPages)

		return h.Err()
	})
}

func card(h *helpers.Writer, u users.Record) {
	h.Raw(`<div class="rounded border bg-white p-4 shadow hover:bg-gray-100" data-user-id="`, helpers.FormatInt(u.ID), `"><img src="`)
	h.URL(u.Avatar)
	h.Raw(`" alt="`)
	h.Text(u.FullName())
	h.Raw(`" class="mb-2 h-16 w-16 rounded-full"><h2 class="text-lg font-semibold">`)
	h.Text(u.FullName())
	h.Raw(`</h2><p class="text-gray-600">`)
	h.Text(u.Email)
	h.Raw(`</p><div class="mt-2"><a class="`, helpers.Button(helpers.ButtonPrimary, "text-sm"), `" href="`)
	h.URL(helpers.UserPath(u.ID))
	h.Raw(`">Go to User Detail Page</a></div></div>`)
}

func pager(h *helpers.Writer, page, totalPages int) {
	h.Raw(`<nav class="mt-6 flex items-center justify-center" aria-label="Pagination">`)

	if users.HasPrevious(page) {
		h.Raw(`<a class="`, helpers.Button(helpers.ButtonPager, "mr-2"), `" href="`)
		h.URL(helpers.DashboardPath(page - 1))
		h.Raw(`">Previous</a>`)
	} else {
		h.Raw(`<span class="`, helpers.Button(helpers.ButtonPager, "mr-2 opacity-50"), `" aria-disabled="true">Previous</span>`)
	}

	for _, p := range users.PageNumbers(page, totalPages) {
		h.Raw(`<a class="`, helpers.PageButton(p == page), `" href="`)
		h.URL(helpers.DashboardPath(p))
		h.Raw(`"`)
		if p == page {
			h.Raw(` aria-current="page"`)
		}
		h.Raw(`>`, helpers.FormatInt(p), `</a>`)
	}

	if users.HasNext(page, totalPages) {
		h.Raw(`<a class="`, helpers.Button(helpers.ButtonPager, "ml-2"), `" href="`)
		h.URL(helpers.DashboardPath(page + 1))
		h.Raw(`">Next</a>`)
	} else {
		h.Raw(`<span class="`, helpers.Button(helpers.ButtonPager, "ml-2 opacity-50"), `" aria-disabled="true">Next</span>`)
	}

	h.Raw(`</nav>`)
}
