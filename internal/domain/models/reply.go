package models

type ParseMode string

const (
	ParsePlain      ParseMode = ""
	ParseMarkdownV2 ParseMode = "MarkdownV2"
)

type MenuButton struct {
	Label   string
	Payload string
}

type Menu struct {
	Rows [][]MenuButton
}

func NewMenu(buttons []MenuButton, perRow int) *Menu {
	if perRow <= 0 {
		perRow = 1
	}

	menu := &Menu{}

	for start := 0; start < len(buttons); start += perRow {
		end := min(start+perRow, len(buttons))
		menu.Rows = append(menu.Rows, buttons[start:end])
	}

	return menu
}

// Reply - ответ бота на команду или нажатие кнопки.
type Reply struct {
	Text      string
	ParseMode ParseMode
	Menu      *Menu
}
