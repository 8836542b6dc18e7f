package bot

import (
	"bytes"
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"cardczar-bot/card"
	"cardczar-bot/carderrors"
)

func (b *Bot) handleMakeDeck(actor card.Actor, args []string) string {
	if len(args) != 1 {
		return "Usage: " + b.cfg.CommandPrefix + "makedeck <name>"
	}
	name := args[0]
	if len(name) > b.cfg.MaxDeckNameLength {
		return "Deck names are limited to " + strconv.Itoa(b.cfg.MaxDeckNameLength) + " characters."
	}
	d, err := b.library.Create(name, actor.ID)
	if err != nil {
		return errorText(err)
	}
	b.saveDeck(d)
	return "Deck \"" + d.Name + "\" created. Add cards with " +
		b.cfg.CommandPrefix + "makeresponsecard and " + b.cfg.CommandPrefix + "makepromptcard."
}

// handleMakeResponseCard expects "<deck> <card text>"; the text keeps its
// original spacing.
func (b *Bot) handleMakeResponseCard(actor card.Actor, rest string) string {
	deckName, text, ok := splitDeckArg(rest)
	if !ok {
		return "Usage: " + b.cfg.CommandPrefix + "makeresponsecard <deck> <text>"
	}
	d, err := b.library.Get(deckName)
	if err != nil {
		return errorText(err)
	}
	if !d.IsUsableBy(actor) {
		return errorText(carderrors.ErrNotPermitted)
	}
	if !d.AddResponse(card.Response{Text: text}) {
		return errorText(carderrors.ErrDuplicateCard)
	}
	b.saveResponseCard(d.Name, text)
	return "Response card added to \"" + d.Name + "\"."
}

// handleMakePromptCard accepts the deck file prompt syntax, including the
// optional "(Pick N)" prefix.
func (b *Bot) handleMakePromptCard(actor card.Actor, rest string) string {
	deckName, text, ok := splitDeckArg(rest)
	if !ok {
		return "Usage: " + b.cfg.CommandPrefix + "makepromptcard <deck> [(Pick N)] <text>"
	}
	d, err := b.library.Get(deckName)
	if err != nil {
		return errorText(err)
	}
	if !d.IsUsableBy(actor) {
		return errorText(carderrors.ErrNotPermitted)
	}
	p, err := card.ParsePromptLine(text)
	if err != nil {
		return errorText(err)
	}
	if !d.AddPrompt(p) {
		return errorText(carderrors.ErrDuplicateCard)
	}
	b.savePromptCard(d.Name, p)
	return "Prompt card (pick " + strconv.Itoa(p.Blanks) + ") added to \"" + d.Name + "\"."
}

func (b *Bot) handleViewDeck(actor card.Actor, args []string) string {
	if len(args) != 1 {
		return "Usage: " + b.cfg.CommandPrefix + "viewdeck <name>"
	}
	d, err := b.library.Get(args[0])
	if err != nil {
		return errorText(err)
	}
	if !d.IsUsableBy(actor) {
		return errorText(carderrors.ErrNotPermitted)
	}
	responses, prompts := d.Counts()
	return "Deck \"" + d.Name + "\": " + strconv.Itoa(responses) + " response cards, " +
		strconv.Itoa(prompts) + " prompt cards."
}

func (b *Bot) handleAllDecks() string {
	decks := b.library.All()
	if len(decks) == 0 {
		return "No decks yet. Create one with " + b.cfg.CommandPrefix + "makedeck <name>."
	}
	var sb strings.Builder
	sb.WriteString("Available decks:\n")
	for _, d := range decks {
		responses, prompts := d.Counts()
		sb.WriteString("- ")
		sb.WriteString(d.Name)
		sb.WriteString(" (")
		sb.WriteString(strconv.Itoa(responses))
		sb.WriteString(" responses, ")
		sb.WriteString(strconv.Itoa(prompts))
		sb.WriteString(" prompts)\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// handleDeckFile attaches the deck's two files in the plain-text wire
// format, one card per line.
func (b *Bot) handleDeckFile(s *discordgo.Session, channelID string, actor card.Actor, args []string) string {
	if len(args) != 1 {
		return "Usage: " + b.cfg.CommandPrefix + "deckfile <name>"
	}
	d, err := b.library.Get(args[0])
	if err != nil {
		return errorText(err)
	}
	if !d.IsUsableBy(actor) {
		return errorText(carderrors.ErrNotPermitted)
	}

	var responses, prompts bytes.Buffer
	if err := card.WriteResponses(&responses, d.Responses()); err != nil {
		return "Could not build the deck file."
	}
	if err := card.WritePrompts(&prompts, d.Prompts()); err != nil {
		return "Could not build the deck file."
	}
	if _, err := s.ChannelFileSend(channelID, d.Name+"_responses.txt", &responses); err != nil {
		slog.Warn("sending deck file", "tag", "bot", "deck", d.Name, "err", err)
		return "Could not attach the deck files."
	}
	if _, err := s.ChannelFileSend(channelID, d.Name+"_prompts.txt", &prompts); err != nil {
		slog.Warn("sending deck file", "tag", "bot", "deck", d.Name, "err", err)
	}
	return ""
}

// splitDeckArg splits "<deck> <free text>" keeping the text's spacing.
func splitDeckArg(rest string) (deckName, text string, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(rest), " ", 2)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		return "", "", false
	}
	return parts[0], strings.TrimSpace(parts[1]), true
}

func (b *Bot) saveDeck(d *card.Deck) {
	if b.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := b.store.SaveDeck(ctx, d.Name, d.AuthorID); err != nil {
		slog.Warn("persisting deck", "tag", "bot", "deck", d.Name, "err", err)
	}
}

func (b *Bot) saveResponseCard(deckName, text string) {
	if b.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := b.store.SaveResponseCard(ctx, deckName, text); err != nil {
		slog.Warn("persisting response card", "tag", "bot", "deck", deckName, "err", err)
	}
}

func (b *Bot) savePromptCard(deckName string, p card.Prompt) {
	if b.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := b.store.SavePromptCard(ctx, deckName, p.Text, p.Blanks); err != nil {
		slog.Warn("persisting prompt card", "tag", "bot", "deck", deckName, "err", err)
	}
}
