package keyboard

import "testing"

func TestInlineButtonsRowsKeepsRawData(t *testing.T) {
	m := InlineButtonsRows(
		[]InlineBtn{{Text: "Add IP", Data: "add_ip"}, {Text: "List IPs", Data: "ip_list"}},
		nil,
		[]InlineBtn{{Text: "8.8.8.8", Data: "ip_8.8.8.8"}},
	)
	if m == nil || len(m.InlineKeyboard) != 2 {
		t.Fatalf("unexpected markup %+v", m)
	}
	if got := m.InlineKeyboard[1][0].Data; got != "ip_8.8.8.8" {
		t.Fatalf("data = %q", got)
	}
	if InlineButtonsRows() != nil {
		t.Fatal("expected nil markup without buttons")
	}
}

func TestChunkButtons(t *testing.T) {
	btns := []InlineBtn{{Text: "a"}, {Text: "b"}, {Text: "c"}}
	rows := ChunkButtons(btns, 2)
	if len(rows) != 2 || len(rows[0]) != 2 || len(rows[1]) != 1 {
		t.Fatalf("rows = %+v", rows)
	}
	if len(ChunkButtons(btns, 0)) != 3 {
		t.Fatal("n <= 0 should place one button per row")
	}
}
