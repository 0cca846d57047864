package web

import "strings"

func flashMessage(notice string) string {
	switch strings.TrimSpace(notice) {
	case "board_created":
		return "Board ready. Share this page with spectators; only you can change the score."
	case "board_claimed":
		return "You are now the umpire of this board."
	case "match_reset":
		return "Match reset."
	}
	return ""
}
