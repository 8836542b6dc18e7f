// Package bot is the Discord-facing dispatcher: it tokenizes commands,
// resolves the acting member into a card.Actor, calls exactly one engine
// operation per verb, and renders the returned descriptor into channel
// messages, DMs, or file attachments. All rendering happens after the
// engine call returns, outside any session lock.
package bot

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"cardczar-bot/botplayer"
	"cardczar-bot/card"
	"cardczar-bot/config"
	"cardczar-bot/game"
	"cardczar-bot/live"
	"cardczar-bot/sessions"
	"cardczar-bot/storage"
)

const storeTimeout = 5 * time.Second

// Bot wires the dispatcher to its collaborators.
type Bot struct {
	cfg     *config.Config
	library *card.Library
	manager *sessions.Manager
	roster  *botplayer.Roster
	store   *storage.Store
	hub     *live.Hub
}

// New creates the dispatcher. store and hub may be nil.
func New(cfg *config.Config, library *card.Library, manager *sessions.Manager, roster *botplayer.Roster, store *storage.Store, hub *live.Hub) *Bot {
	return &Bot{
		cfg:     cfg,
		library: library,
		manager: manager,
		roster:  roster,
		store:   store,
		hub:     hub,
	}
}

// Attach registers the message handler on a Discord session.
func (b *Bot) Attach(s *discordgo.Session) {
	s.AddHandler(b.onMessageCreate)
	s.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentMessageContent
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	content := strings.TrimSpace(m.Content)
	if !strings.HasPrefix(content, b.cfg.CommandPrefix) {
		return
	}
	content = strings.TrimSpace(content[len(b.cfg.CommandPrefix):])

	fields := strings.Fields(content)
	if len(fields) == 0 {
		return
	}
	verb := ParseVerb(strings.ToLower(fields[0]))
	args := fields[1:]
	// rest is everything after the verb, with original spacing, for
	// free-text arguments like card texts.
	rest := strings.TrimSpace(strings.TrimPrefix(content, fields[0]))

	actor := b.actorFrom(s, m)

	var reply string
	switch verb {
	case VerbUnknown:
		return
	case VerbSetup:
		reply = b.handleSetup(m.ChannelID, actor, args)
	case VerbJoin:
		reply = b.handleJoin(m.ChannelID, actor.ID, displayName(m))
	case VerbAddBot:
		reply = b.handleAddBot(s, m.ChannelID)
	case VerbLeave:
		reply = b.handleLeave(m.ChannelID, actor.ID, displayName(m))
	case VerbStart:
		reply = b.handleStart(s, m.ChannelID)
	case VerbPlay:
		reply = b.handlePlay(s, m.ChannelID, actor.ID, displayName(m), args)
	case VerbPick:
		reply = b.handlePick(s, m.ChannelID, actor.ID, args)
	case VerbMyHand:
		reply = b.handleMyHand(s, m.ChannelID, actor.ID)
	case VerbEnd:
		reply = b.handleEnd(m.ChannelID)
	case VerbMakeDeck:
		reply = b.handleMakeDeck(actor, args)
	case VerbMakeResponseCard:
		reply = b.handleMakeResponseCard(actor, rest)
	case VerbMakePromptCard:
		reply = b.handleMakePromptCard(actor, rest)
	case VerbViewDeck:
		reply = b.handleViewDeck(actor, args)
	case VerbAllDecks:
		reply = b.handleAllDecks()
	case VerbDeckFile:
		reply = b.handleDeckFile(s, m.ChannelID, actor, args)
	}

	if reply != "" {
		if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
			slog.Warn("sending reply", "tag", "bot", "verb", verb.String(), "err", err)
		}
	}
	b.broadcast(m.ChannelID)
}

// actorFrom resolves the message author into the engine's actor identity:
// guild roles become group ids and the administrator permission marks the
// actor as elevated.
func (b *Bot) actorFrom(s *discordgo.Session, m *discordgo.MessageCreate) card.Actor {
	actor := card.Actor{ID: m.Author.ID}
	if m.Member != nil {
		actor.GroupIDs = m.Member.Roles
	}
	if perms, err := s.UserChannelPermissions(m.Author.ID, m.ChannelID); err == nil {
		actor.Admin = perms&discordgo.PermissionAdministrator != 0
	}
	return actor
}

func displayName(m *discordgo.MessageCreate) string {
	if m.Member != nil && m.Member.Nick != "" {
		return m.Member.Nick
	}
	return m.Author.Username
}

// broadcast pushes the channel's current snapshot to spectators, if any.
func (b *Bot) broadcast(channelID string) {
	if b.hub == nil {
		return
	}
	sess, err := b.manager.Get(channelID)
	if err != nil {
		return
	}
	b.hub.Broadcast(sess.Snapshot())
}

func (b *Bot) handleSetup(channelID string, actor card.Actor, deckNames []string) string {
	if _, err := b.manager.Create(channelID, actor, deckNames); err != nil {
		return errorText(err)
	}
	return "Game set up. Type " + b.cfg.CommandPrefix + "join to play, then " +
		b.cfg.CommandPrefix + "start once at least " + strconv.Itoa(b.cfg.MinPlayers) + " players are in."
}

func (b *Bot) handleJoin(channelID, userID, name string) string {
	sess, err := b.manager.Get(channelID)
	if err != nil {
		return errorText(err)
	}
	if err := sess.AddPlayer(userID, name); err != nil {
		return errorText(err)
	}
	return name + " joined the game."
}

func (b *Bot) handleAddBot(s *discordgo.Session, channelID string) string {
	sess, err := b.manager.Get(channelID)
	if err != nil {
		return errorText(err)
	}
	id, name := b.roster.Next()
	if err := sess.AddBot(id, name); err != nil {
		return errorText(err)
	}
	reply := name + " (bot) joined the game."
	// A bot's automatic play can be the last one in.
	if sess.Running() && sess.AllPlayed() {
		reply += "\n" + b.readingAnnouncement(sess)
	}
	return reply
}

func (b *Bot) handleLeave(channelID, userID, name string) string {
	sess, err := b.manager.Get(channelID)
	if err != nil {
		return errorText(err)
	}
	wasRunning := sess.Running()
	if err := sess.Remove(userID); err != nil {
		return errorText(err)
	}
	reply := name + " left the game."
	if wasRunning && !sess.Running() {
		sum, err := b.manager.End(channelID)
		if err == nil {
			reply += "\n" + summaryText(sum)
			b.persistResult(channelID, sess.HostID, sum)
		}
		return reply
	}
	// The departed player may have been the last one holding up the round;
	// submission numbers also shift, so re-list them.
	if sess.Running() && sess.AllPlayed() {
		reply += "\n" + b.readingAnnouncement(sess)
	}
	return reply
}

func (b *Bot) handleStart(s *discordgo.Session, channelID string) string {
	sess, err := b.manager.Get(channelID)
	if err != nil {
		return errorText(err)
	}
	if err := sess.Start(); err != nil {
		return errorText(err)
	}
	b.dmHands(s, sess)
	rs := sess.RoundInfo()
	return roundAnnouncement(rs) + "\nYour hand was sent by DM; " +
		b.cfg.CommandPrefix + "myhand re-sends it."
}

func (b *Bot) handlePlay(s *discordgo.Session, channelID, userID, name string, args []string) string {
	sess, err := b.manager.Get(channelID)
	if err != nil {
		return errorText(err)
	}
	indices := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return "Usage: " + b.cfg.CommandPrefix + "play <card number> [card number...]"
		}
		indices = append(indices, n-1)
	}
	if err := sess.Play(userID, indices); err != nil {
		return errorText(err)
	}
	reply := name + " played."
	if sess.AllPlayed() {
		reply += "\n" + b.readingAnnouncement(sess)
	}
	return reply
}

func (b *Bot) handlePick(s *discordgo.Session, channelID, actorID string, args []string) string {
	sess, err := b.manager.Get(channelID)
	if err != nil {
		return errorText(err)
	}
	subs := sess.Submissions()
	if len(args) != 1 {
		return "Usage: " + b.cfg.CommandPrefix + "pick <submission number>"
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(subs) {
		return "Pick a submission number between 1 and " + strconv.Itoa(len(subs)) + "."
	}
	outcome, err := sess.PickWinner(actorID, subs[n-1].PlayerID)
	if err != nil {
		return errorText(err)
	}
	b.dmHands(s, sess)
	return outcomeText(outcome) + "\n" + roundAnnouncement(outcome.Next)
}

func (b *Bot) handleMyHand(s *discordgo.Session, channelID, userID string) string {
	sess, err := b.manager.Get(channelID)
	if err != nil {
		return errorText(err)
	}
	hand, err := sess.HandOf(userID)
	if err != nil {
		return errorText(err)
	}
	if err := b.dm(s, userID, handText(hand)); err != nil {
		return "I couldn't DM you; are DMs from server members enabled?"
	}
	return ""
}

func (b *Bot) handleEnd(channelID string) string {
	sess, err := b.manager.Get(channelID)
	if err != nil {
		return errorText(err)
	}
	sum, err := b.manager.End(channelID)
	if err != nil {
		return errorText(err)
	}
	b.persistResult(channelID, sess.HostID, sum)
	return summaryText(sum)
}

// readingAnnouncement lists the round's submissions, numbered but
// unattributed, so the judge picks blind.
func (b *Bot) readingAnnouncement(sess *game.Session) string {
	rs := sess.RoundInfo()
	var sb strings.Builder
	sb.WriteString("All cards are in! ")
	sb.WriteString(rs.JudgeName)
	sb.WriteString(", pick a winner with ")
	sb.WriteString(b.cfg.CommandPrefix)
	sb.WriteString("pick <number>.\n")
	sb.WriteString("> ")
	sb.WriteString(rs.PromptText)
	sb.WriteString("\n")
	for i, sub := range sess.Submissions() {
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(". ")
		sb.WriteString(strings.Join(sub.Cards, " / "))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (b *Bot) persistResult(channelID, hostID string, sum *game.Summary) {
	if b.store == nil || sum == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	ids := make([]string, 0, len(sum.Winners))
	names := make([]string, 0, len(sum.Winners))
	topScore := 0
	for _, w := range sum.Winners {
		ids = append(ids, w.UserID)
		names = append(names, w.Name)
		topScore = w.Score
	}
	err := b.store.InsertGameResult(ctx, channelID, hostID, sum.Rounds, len(sum.Scores), ids, names, topScore)
	if err != nil {
		slog.Warn("persisting game result", "tag", "bot", "channel", channelID, "err", err)
	}
}

// dmHands sends each human player their current hand by DM.
func (b *Bot) dmHands(s *discordgo.Session, sess *game.Session) {
	for _, pv := range sess.Players() {
		if pv.Bot {
			continue
		}
		hand, err := sess.HandOf(pv.UserID)
		if err != nil {
			continue
		}
		if err := b.dm(s, pv.UserID, handText(hand)); err != nil {
			slog.Warn("sending hand DM", "tag", "bot", "user", pv.UserID, "err", err)
		}
	}
}

func (b *Bot) dm(s *discordgo.Session, userID, text string) error {
	ch, err := s.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	_, err = s.ChannelMessageSend(ch.ID, text)
	return err
}
