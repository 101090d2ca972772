package auth

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/loganlanou/reqres-dashboard/views/helpers"
	"github.com/loganlanou/reqres-dashboard/views/layout"
)

// LoginForm is what the login page shows: the submitted email (never the
// password) and any errors keyed by field, plus "general" for API errors.
type LoginForm struct {
	Email  string
	Errors map[string]string
}

func Login(form LoginForm) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := helpers.NewWriter(w)

		h.Raw(`<div class="flex min-h-[80vh] items-center justify-center">`,
			`<form method="post" action="/login" novalidate class="w-full max-w-md rounded-lg bg-white p-6 shadow-md">`,
			`<h2 class="mb-6 text-center text-3xl font-bold text-blue-600">Login</h2>`)

		if msg := form.Errors["general"]; msg != "" {
			h.Raw(`<p role="alert" class="mb-4 text-sm text-red-500">`)
			h.Text(msg)
			h.Raw(`</p>`)
		}

		field(h, "email", "Email", "email", form.Email, "Enter your email", form.Errors["email"], true)
		field(h, "password", "Password", "password", "", "Enter your password", form.Errors["password"], false)

		h.Raw(`<button type="submit" class="`, helpers.Button(helpers.ButtonPrimary, "w-full font-semibold rounded-md"), `">Login</button>`,
			`</form></div>`)

		return h.Err()
	})
}

func field(h *helpers.Writer, id, label, kind, value, placeholder, errMsg string, autofocus bool) {
	h.Raw(`<div class="mb-4"><label for="`, id, `" class="block text-sm font-medium text-gray-700">`)
	h.Text(label)
	h.Raw(`</label><input type="`, kind, `" id="`, id, `" name="`, id, `" value="`)
	h.Text(value)
	h.Raw(`" placeholder="`)
	h.Text(placeholder)
	h.Raw(`" class="`, helpers.Input(errMsg != ""), `"`)
	if autofocus {
		h.Raw(` autofocus`)
	}
	h.Raw(`>`)
	if errMsg != "" {
		h.Raw(`<p class="mt-1 text-sm text-red-500">`)
		h.Text(errMsg)
		h.Raw(`</p>`)
	}
	h.Raw(`</div>`)
}

func LogoutConfirm() templ.Component {
	return layout.Confirm("Confirm Logout", "Are you sure you want to log out?", "/logout", "Logout", "/dashboard")
}
