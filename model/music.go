package model

type Music struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	File string `json:"file" yaml:"file"`
}

type MusicList struct {
	Files []Music `json:"files" yaml:"files"`
}
