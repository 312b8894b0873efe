// Package menu defines the callback vocabulary and transport-neutral replies
// exchanged between the bot logic and the Telegram adapter.
package menu

import (
	"strings"

	"github.com/m3rciful/ipbot/internal/ipaddr"
)

// Kind tags the variant of an Action.
type Kind int

const (
	ActionUnknown Kind = iota
	ActionAddIP
	ActionListIPs
	ActionShowIP
	ActionDeleteIP
	ActionConfirmAdd
	ActionDoNothing
)

// Raw callback payloads and prefixes.
const (
	DataAddIP         = "add_ip"
	DataListIPs       = "ip_list"
	DataDoNothing     = "do_nothing"
	PrefixShowIP      = "ip_"
	PrefixDeleteIP    = "delete_"
	PrefixConfirmAdd  = "confirm_add_"
	maxCallbackLength = 64
)

// Action is a parsed callback payload. Addr is set, in canonical form, for
// ActionShowIP, ActionDeleteIP and ActionConfirmAdd.
type Action struct {
	Kind Kind
	Addr string
}

func (k Kind) String() string {
	switch k {
	case ActionAddIP:
		return "add_ip"
	case ActionListIPs:
		return "ip_list"
	case ActionShowIP:
		return "show_ip"
	case ActionDeleteIP:
		return "delete_ip"
	case ActionConfirmAdd:
		return "confirm_add"
	case ActionDoNothing:
		return "do_nothing"
	default:
		return "unknown"
	}
}

// ParseAction decodes raw callback data. Address-bearing payloads whose
// address is not a valid dotted quad parse as ActionUnknown.
func ParseAction(data string) Action {
	data = strings.TrimSpace(data)
	if len(data) > maxCallbackLength {
		return Action{}
	}
	switch data {
	case DataAddIP:
		return Action{Kind: ActionAddIP}
	case DataListIPs:
		return Action{Kind: ActionListIPs}
	case DataDoNothing:
		return Action{Kind: ActionDoNothing}
	}

	// ip_list is matched above, before the ip_ prefix.
	for _, p := range []struct {
		prefix string
		kind   Kind
	}{
		{PrefixConfirmAdd, ActionConfirmAdd},
		{PrefixDeleteIP, ActionDeleteIP},
		{PrefixShowIP, ActionShowIP},
	} {
		rest, ok := strings.CutPrefix(data, p.prefix)
		if !ok {
			continue
		}
		addr, class := ipaddr.Parse(rest)
		if class == ipaddr.Invalid {
			return Action{}
		}
		return Action{Kind: p.kind, Addr: addr}
	}
	return Action{}
}

// Data encodes the action back into callback data.
func (a Action) Data() string {
	switch a.Kind {
	case ActionAddIP:
		return DataAddIP
	case ActionListIPs:
		return DataListIPs
	case ActionDoNothing:
		return DataDoNothing
	case ActionShowIP:
		return PrefixShowIP + a.Addr
	case ActionDeleteIP:
		return PrefixDeleteIP + a.Addr
	case ActionConfirmAdd:
		return PrefixConfirmAdd + a.Addr
	default:
		return ""
	}
}

// Show, Delete and ConfirmAdd build address-bearing actions.
func Show(addr string) Action { return Action{Kind: ActionShowIP, Addr: addr} }
func Delete(addr string) Action { return Action{Kind: ActionDeleteIP, Addr: addr} }
func ConfirmAdd(addr string) Action { return Action{Kind: ActionConfirmAdd, Addr: addr} }
