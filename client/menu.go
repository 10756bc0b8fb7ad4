package client

import (
	"fmt"
	"tetrisgo/audio"
	"tetrisgo/terminal"
)

const (
	titleMain     = "Terminal Tetris"
	titlePaused   = "Paused"
	titleSettings = "Settings"
	titleGameOver = "Game Over :)"
)

// main menu options.
const (
	optStart = iota
	optSettings
	optQuit
)

// pause menu options.
const (
	optContinue = iota
	optMusicUp
	optMusicDown
	optEffectsUp
	optEffectsDown
	optRestart
	optMainMenu
	optPauseQuit
)

// game over menu options.
const (
	optPlayAgain = iota
	optBackToMenu
	optGameOverQuit
)

// settings menu options.
const (
	optMusic = iota
	optEffects
	optBack
)

func mainMenu(highScore, selected int) terminal.Menu {
	return terminal.Menu{
		Title:    titleMain,
		Lines:    []string{fmt.Sprintf("High score: %d", highScore)},
		Options:  []string{"Start", "Settings", "Quit"},
		Selected: selected,
	}
}

func pauseMenu(p audio.Player, selected int) terminal.Menu {
	return terminal.Menu{
		Title: titlePaused,
		Lines: volumeLines(p),
		Options: []string{
			"Continue",
			"Music +",
			"Music -",
			"Effects +",
			"Effects -",
			"Restart",
			"Main menu",
			"Quit",
		},
		Selected: selected,
	}
}

func settingsMenu(p audio.Player, selected int) terminal.Menu {
	return terminal.Menu{
		Title: titleSettings,
		Lines: []string{"left/right to adjust"},
		Options: []string{
			fmt.Sprintf("Music volume: %d%%", audio.Percent(p.MusicVolume())),
			fmt.Sprintf("Effects volume: %d%%", audio.Percent(p.EffectsVolume())),
			"Back",
		},
		Selected: selected,
	}
}

func gameOverMenu(score, highScore, selected int) terminal.Menu {
	return terminal.Menu{
		Title: titleGameOver,
		Lines: []string{
			fmt.Sprintf("Score: %d", score),
			fmt.Sprintf("High score: %d", highScore),
		},
		Options:  []string{"Restart", "Main menu", "Quit"},
		Selected: selected,
	}
}

func volumeLines(p audio.Player) []string {
	return []string{
		fmt.Sprintf("Music %d%%   Effects %d%%", audio.Percent(p.MusicVolume()), audio.Percent(p.EffectsVolume())),
	}
}

// wrap moves the selection by d over n options, wrapping around.
func wrap(selected, d, n int) int {
	return ((selected+d)%n + n) % n
}
