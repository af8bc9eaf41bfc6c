package shop

type OrderModel struct{ ID int }

type OrderView struct{}

//go:noinline
func Render(v OrderView) string { return "" }
