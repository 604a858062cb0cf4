package model

// QuizQuestion 静态题目，运行时不可变，不落库
type QuizQuestion struct {
	ID            string   `yaml:"id" json:"id"`
	Prompt        string   `yaml:"prompt" json:"prompt"`
	Options       []string `yaml:"options" json:"options"`
	CorrectAnswer int      `yaml:"correct_answer" json:"-"`
	Explanation   string   `yaml:"explanation" json:"-"`
}
