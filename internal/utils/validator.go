package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

func IsValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

func IsValidPassword(password string) bool {
	return len(password) >= 8
}

func SanitizeString(input string) string {
	return strings.TrimSpace(input)
}

func IsValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

// Sub-ratings are optional: 0 means "not rated".
func IsValidSubRating(rating int) bool {
	return rating >= 0 && rating <= 5
}

func IsValidComment(comment string) bool {
	n := utf8.RuneCountInString(comment)
	return n >= 1 && n <= 1000
}

func IsValidRestaurantName(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= 1 && n <= 50
}

func IsValidVoteType(voteType string) bool {
	return voteType == "up" || voteType == "down"
}

func IsValidTicketPriority(priority string) bool {
	switch priority {
	case "low", "medium", "high", "urgent":
		return true
	}
	return false
}

func IsValidTicketStatus(status string) bool {
	switch status {
	case "open", "in_progress", "resolved", "closed":
		return true
	}
	return false
}
