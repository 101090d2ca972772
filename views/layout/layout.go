package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/loganlanou/reqres-dashboard/views/helpers"
)

// Flash is a one-shot message carried across a redirect.
type Flash struct {
	Kind    string // "success" or "error"
	Message string
}

func (f Flash) classes() string {
	base := "mb-4 rounded border px-4 py-3"
	if f.Kind == "error" {
		return helpers.Classes(base, "border-red-300 bg-red-50 text-red-700")
	}
	return helpers.Classes(base, "border-green-300 bg-green-50 text-green-700")
}

// Base wraps body in the HTML document shell.
func Base(meta PageMeta, flash *Flash, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := helpers.NewWriter(w)

		h.Raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>`)
		h.Text(meta.FullTitle())
		h.Raw(`</title><meta name="description" content="`)
		h.Text(meta.Description)
		h.Raw(`">`)
		if meta.CanonicalURL != "" {
			h.Raw(`<link rel="canonical" href="`)
			h.URL(meta.CanonicalURL)
			h.Raw(`">`)
		}
		h.Raw(`<script src="https://cdn.tailwindcss.com"></script></head>`,
			`<body class="min-h-screen bg-gray-100"><main class="mx-auto max-w-5xl p-6">`)

		if flash != nil && flash.Message != "" {
			h.Raw(`<div role="status" class="`, flash.classes(), `">`)
			h.Text(flash.Message)
			h.Raw(`</div>`)
		}

		h.Render(ctx, body)
		h.Raw(`</main></body></html>`)

		return h.Err()
	})
}

// BackLink renders the "Back" link shown above detail pages.
func BackLink(href string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := helpers.NewWriter(w)
		h.Raw(`<div class="mb-6"><a class="flex items-center gap-2 text-blue-500 hover:text-blue-700" href="`)
		h.URL(href)
		h.Raw(`"><svg xmlns="http://www.w3.org/2000/svg" fill="none" viewBox="0 0 24 24" stroke-width="1.5" stroke="currentColor" class="h-5 w-5">`,
			`<path stroke-linecap="round" stroke-linejoin="round" d="M15.75 19.5L8.25 12l7.5-7.5"/></svg>Back</a></div>`)
		return h.Err()
	})
}

// Confirm renders a confirmation card that posts to action.
func Confirm(title, description, action, confirmLabel, cancelHref string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := helpers.NewWriter(w)
		h.Raw(`<div class="mx-auto mt-20 w-96 rounded bg-white p-6 shadow-md"><h2 class="mb-4 text-xl font-bold">`)
		h.Text(title)
		h.Raw(`</h2><p class="mb-6 text-gray-600">`)
		h.Text(description)
		h.Raw(`</p><form method="post" action="`)
		h.URL(action)
		h.Raw(`" class="flex justify-end gap-4"><a class="`, helpers.Button(helpers.ButtonSecondary), `" href="`)
		h.URL(cancelHref)
		h.Raw(`">Cancel</a><button type="submit" class="`, helpers.Button(helpers.ButtonDanger), `">`)
		h.Text(confirmLabel)
		h.Raw(`</button></form></div>`)
		return h.Err()
	})
}
