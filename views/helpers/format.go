package helpers

import (
	"fmt"
	"strconv"
	"time"
)

// FormatInt formats an integer as a string
func FormatInt(n int) string {
	return strconv.Itoa(n)
}

// FormatDateTime formats a time.Time as "Jan 2, 2006 3:04 PM"
func FormatDateTime(t time.Time) string {
	return t.Format("Jan 2, 2006 3:04 PM")
}

func DashboardPath(page int) string {
	if page <= 1 {
		return "/dashboard"
	}
	return fmt.Sprintf("/dashboard?page=%d", page)
}

func UserPath(id int) string {
	return fmt.Sprintf("/users/%d", id)
}

func EditUserPath(id int) string {
	return UserPath(id) + "/edit"
}

func DeleteUserPath(id int) string {
	return UserPath(id) + "/delete"
}
