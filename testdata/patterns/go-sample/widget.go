package sample

type Widget struct{ name string }

func NewWidget(name string) *Widget {
	return &Widget{name: name}
}
