package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/dmitrijs2005/coursemanager/internal/client/media"
	"github.com/dmitrijs2005/coursemanager/internal/client/services"
)

func (a *App) addTopic(_ context.Context, args []string) error {
	c, err := a.resolveCourse(args[0])
	if err != nil {
		return err
	}
	title, err := a.ask("Topic title")
	if err != nil {
		return err
	}
	if title == "" {
		a.println("The topic title is required.")
		return nil
	}

	t, err := a.courses.AddTopic(c.ID, title)
	if err != nil {
		return err
	}
	a.printf("Topic %q added (%s).\n", t.Title, shortID(t.ID))
	return nil
}

func (a *App) editTopic(_ context.Context, args []string) error {
	c, t, err := a.resolveCourseTopic(args)
	if err != nil {
		return err
	}
	title, err := a.ask("Topic title [" + t.Title + "]")
	if err != nil {
		return err
	}
	if title == "" || title == t.Title {
		a.println("Nothing changed.")
		return nil
	}

	a.courses.Dispatch(services.EditTopic{CourseID: c.ID, TopicID: t.ID, Title: title})
	a.println("Topic updated.")
	return nil
}

func (a *App) deleteTopic(_ context.Context, args []string) error {
	c, t, err := a.resolveCourseTopic(args)
	if err != nil {
		return err
	}
	ok, err := a.confirmed("Delete topic " + t.Title + "?")
	if err != nil || !ok {
		return err
	}

	a.courses.Dispatch(services.DeleteTopic{CourseID: c.ID, TopicID: t.ID})
	a.println("Topic deleted.")
	return nil
}

// showTopic prints a topic with its notes rendered as markdown in the
// current theme.
func (a *App) showTopic(_ context.Context, args []string) error {
	c, t, err := a.resolveCourseTopic(args)
	if err != nil {
		return err
	}

	a.printf("%s / %s  (%s)\n", c.Name, t.Title, t.ID)
	a.printf("Created %s\n", formatDate(t.CreatedAt.Time))

	if t.Notes == "" {
		a.println("(no notes)")
	} else if out, err := renderMarkdown(t.Notes, a.prefs.Theme()); err != nil {
		a.println(t.Notes)
	} else {
		fmt.Fprint(a.out, out)
	}

	for i, uri := range t.ImageURLs {
		mime, data, err := media.DecodeDataURI(uri)
		if err != nil {
			a.printf("  image %d: unreadable\n", i+1)
			continue
		}
		a.printf("  image %d: %s, %d bytes\n", i+1, mime, len(data))
	}
	return nil
}

// editNotes replaces the notes of a topic, read from a file when one is given
// and from the prompt otherwise. Images are kept.
func (a *App) editNotes(_ context.Context, args []string) error {
	c, t, err := a.resolveCourseTopic(args)
	if err != nil {
		return err
	}

	var notes string
	if len(args) > 2 {
		data, err := os.ReadFile(args[2])
		if err != nil {
			return fmt.Errorf("failed to read notes: %w", err)
		}
		notes = string(data)
	} else {
		notes, err = a.askMultiline("Enter notes (markdown)")
		if err != nil {
			return err
		}
	}

	a.courses.Dispatch(services.UpdateTopicDetails{
		CourseID: c.ID, TopicID: t.ID, Notes: notes, ImageURLs: t.ImageURLs,
	})
	a.println("Notes saved.")
	return nil
}

func (a *App) addImage(_ context.Context, args []string) error {
	c, t, err := a.resolveCourseTopic(args)
	if err != nil {
		return err
	}
	uri, err := media.LoadDataURI(args[2], a.config.MaxImageDimension)
	if err != nil {
		return err
	}

	images := append(slices.Clone(t.ImageURLs), uri)
	a.courses.Dispatch(services.UpdateTopicDetails{
		CourseID: c.ID, TopicID: t.ID, Notes: t.Notes, ImageURLs: images,
	})
	a.printf("Image %d attached.\n", len(images))
	return nil
}

func (a *App) removeImage(_ context.Context, args []string) error {
	c, t, err := a.resolveCourseTopic(args)
	if err != nil {
		return err
	}
	i, err := resolveImage(t, args[2])
	if err != nil {
		return err
	}

	images := slices.Delete(slices.Clone(t.ImageURLs), i, i+1)
	a.courses.Dispatch(services.UpdateTopicDetails{
		CourseID: c.ID, TopicID: t.ID, Notes: t.Notes, ImageURLs: images,
	})
	a.println("Image removed.")
	return nil
}

// saveImage writes an attached image to a file, named after the topic when
// no path is given.
func (a *App) saveImage(_ context.Context, args []string) error {
	_, t, err := a.resolveCourseTopic(args)
	if err != nil {
		return err
	}
	i, err := resolveImage(t, args[2])
	if err != nil {
		return err
	}

	uri := t.ImageURLs[i]
	path := ""
	if len(args) > 3 {
		path = args[3]
	} else {
		mime, _, err := media.DecodeDataURI(uri)
		if err != nil {
			return err
		}
		path = fmt.Sprintf("%s-%d%s", shortID(t.ID), i+1, media.Extension(mime))
	}

	if err := media.SaveDataURI(uri, path); err != nil {
		return err
	}
	a.printf("Image saved to %s\n", path)
	return nil
}
