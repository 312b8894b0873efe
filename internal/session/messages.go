package session

import "fmt"

const (
	msgPrompt       = "Please enter the IP address to add:"
	msgLoopback     = "127.0.0.1 cannot be added to the list."
	msgRetry        = "That is not a valid IP address. Please try again:"
	msgGiveUp       = "Sorry, I can't understand that IP address. Please start again from the menu."
	msgNoAction     = "No action taken."
	msgExpired      = "This confirmation has expired."
	msgSaveWarning  = "Warning: the list could not be saved and will be lost on restart."
	msgAddFailed    = "Could not add %s."
	msgPrivateAsk   = "%s looks like a private network address. Add it anyway?"
	msgAlreadyThere = "%s is already in the list."
	msgAdded        = "%s has been added to the list."
)

func added(ip string) string { return fmt.Sprintf(msgAdded, ip) }
func duplicate(ip string) string { return fmt.Sprintf(msgAlreadyThere, ip) }
func askPrivate(ip string) string { return fmt.Sprintf(msgPrivateAsk, ip) }
func addFailed(ip string) string { return fmt.Sprintf(msgAddFailed, ip) }
