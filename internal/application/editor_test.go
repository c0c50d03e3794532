package application_test

import (
	"context"
	"errors"
	"strings"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"mailtmpl/internal/application"
	"mailtmpl/internal/domain"
	"mailtmpl/internal/domain/entities"
	mock_output "mailtmpl/internal/ports/output/mock"
)

const sampleFile = `{
  "template": "Hi $$name$$, bye $$name$$",
  "placeholders": {
    "$$name$$": {"fr": "Bonjour", "en": "Hello"}
  }
}`

func localeOf(p entities.Preview) string {
	if p.Locale == nil {
		return ""
	}
	return string(*p.Locale)
}

var _ = Describe("EditorService", func() {
	var (
		ctx    context.Context
		ctrl   *gomock.Controller
		store  *mock_output.MockTemplateStore
		editor *application.EditorService
	)

	BeforeEach(func() {
		ctx = context.Background()
		ctrl = gomock.NewController(GinkgoT())
		store = mock_output.NewMockTemplateStore(ctrl)
		editor = application.NewEditorService(store, entities.OrderLongestFirst)
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	Describe("a new session", func() {
		It("starts empty and clean", func() {
			state := editor.Snapshot(ctx)
			Expect(state.Filename).To(Equal("template"))
			Expect(state.Template).To(BeEmpty())
			Expect(state.Placeholders).To(BeEmpty())
			Expect(state.Locales).To(BeEmpty())
			Expect(state.View).To(Equal(entities.ViewSettings))
			Expect(state.UnsavedChanges).To(BeFalse())
		})
	})

	Describe("unsaved changes", func() {
		It("is set by every kind of edit", func() {
			edits := []func(){
				func() { Expect(editor.EditTemplate(ctx, "x")).To(Succeed()) },
				func() {
					_, err := editor.AddPlaceholder(ctx, "$$a$$")
					Expect(err).NotTo(HaveOccurred())
				},
				func() {
					_, err := editor.AddLocale(ctx, "fr")
					Expect(err).NotTo(HaveOccurred())
				},
			}
			for _, edit := range edits {
				Expect(editor.NewTemplate(ctx, true)).To(Succeed())
				Expect(editor.HasUnsavedChanges()).To(BeFalse())
				edit()
				Expect(editor.HasUnsavedChanges()).To(BeTrue())
			}
		})

		It("is set by renames and translations", func() {
			id, _ := editor.AddPlaceholder(ctx, "")
			store.EXPECT().Save(gomock.Any(), "template", gomock.Any()).Return(nil)
			_, err := editor.Save(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(editor.HasUnsavedChanges()).To(BeFalse())

			Expect(editor.RenamePlaceholder(ctx, id, "$$a$$")).To(Succeed())
			Expect(editor.HasUnsavedChanges()).To(BeTrue())

			store.EXPECT().Save(gomock.Any(), "template", gomock.Any()).Return(nil)
			_, err = editor.Save(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(editor.SetTranslation(ctx, id, "fr", "A")).To(Succeed())
			Expect(editor.HasUnsavedChanges()).To(BeTrue())
		})

		It("is not set by re-adding an existing locale", func() {
			_, err := editor.AddLocale(ctx, "fr")
			Expect(err).NotTo(HaveOccurred())
			store.EXPECT().Save(gomock.Any(), "template", gomock.Any()).Return(nil)
			_, err = editor.Save(ctx)
			Expect(err).NotTo(HaveOccurred())

			_, err = editor.AddLocale(ctx, " fr")
			Expect(err).NotTo(HaveOccurred())
			Expect(editor.HasUnsavedChanges()).To(BeFalse())
		})
	})

	Describe("NewTemplate", func() {
		It("asks for confirmation when there are unsaved changes", func() {
			Expect(editor.EditTemplate(ctx, "draft")).To(Succeed())

			err := editor.NewTemplate(ctx, false)
			var confirmErr *domain.ConfirmationError
			Expect(errors.As(err, &confirmErr)).To(BeTrue())
			Expect(confirmErr.Prompt).To(Equal(application.PromptDiscardOnNew))
			Expect(errors.Is(err, domain.ErrActionNotConfirmed)).To(BeTrue())
			Expect(editor.Snapshot(ctx).Template).To(Equal("draft"))

			Expect(editor.NewTemplate(ctx, true)).To(Succeed())
			Expect(editor.Snapshot(ctx).Template).To(BeEmpty())
			Expect(editor.HasUnsavedChanges()).To(BeFalse())
		})

		It("does not ask when nothing changed", func() {
			Expect(editor.NewTemplate(ctx, false)).To(Succeed())
		})
	})

	Describe("Load", func() {
		It("replaces the session and marks it as just loaded", func() {
			_, _ = editor.AddPlaceholder(ctx, "$$old$$")
			Expect(editor.Load(ctx, "welcome.json", strings.NewReader(sampleFile), true)).To(Succeed())

			state := editor.Snapshot(ctx)
			Expect(state.Filename).To(Equal("welcome"))
			Expect(state.Template).To(Equal("Hi $$name$$, bye $$name$$"))
			Expect(state.Locales).To(Equal([]entities.LocaleID{"fr", "en"}))
			Expect(state.Placeholders).To(HaveLen(1))
			Expect(state.JustLoaded).To(BeTrue())
			Expect(state.UnsavedChanges).To(BeFalse())
			Expect(editor.Render(ctx, "fr")).To(Equal("Hi Bonjour, bye Bonjour"))
		})

		It("keeps the previous state when the file has no template", func() {
			Expect(editor.EditTemplate(ctx, "keep me")).To(Succeed())
			id, _ := editor.AddPlaceholder(ctx, "$$k$$")
			Expect(editor.SetTranslation(ctx, id, "fr", "K")).To(Succeed())
			before := editor.Snapshot(ctx)

			err := editor.Load(ctx, "bad.json", strings.NewReader(`{"placeholders": {}}`), true)
			Expect(errors.Is(err, domain.ErrMalformedInput)).To(BeTrue())
			Expect(errors.Is(err, domain.ErrMissingTemplate)).To(BeTrue())
			Expect(editor.Snapshot(ctx)).To(Equal(before))
		})

		It("keeps the previous state when the file is not JSON", func() {
			Expect(editor.EditTemplate(ctx, "keep me")).To(Succeed())
			err := editor.Load(ctx, "bad.json", strings.NewReader(`not json`), true)
			Expect(errors.Is(err, domain.ErrMalformedInput)).To(BeTrue())
			Expect(editor.Snapshot(ctx).Template).To(Equal("keep me"))
			Expect(editor.Snapshot(ctx).Filename).To(Equal("template"))
		})

		It("asks for confirmation over unsaved changes", func() {
			Expect(editor.EditTemplate(ctx, "draft")).To(Succeed())
			err := editor.Load(ctx, "welcome.json", strings.NewReader(sampleFile), false)
			Expect(errors.Is(err, domain.ErrActionNotConfirmed)).To(BeTrue())
			Expect(editor.Snapshot(ctx).Template).To(Equal("draft"))
		})

		It("does not ask right after a load", func() {
			Expect(editor.Load(ctx, "a.json", strings.NewReader(sampleFile), false)).To(Succeed())
			Expect(editor.Load(ctx, "b.json", strings.NewReader(sampleFile), false)).To(Succeed())
			Expect(editor.Snapshot(ctx).Filename).To(Equal("b"))
		})

		It("loads from the store", func() {
			store.EXPECT().Load(gomock.Any(), "welcome").Return([]byte(sampleFile), nil)
			Expect(editor.LoadStored(ctx, "welcome", false)).To(Succeed())
			Expect(editor.Snapshot(ctx).Filename).To(Equal("welcome"))
		})

		It("reports unknown stored templates", func() {
			store.EXPECT().Load(gomock.Any(), "nope").Return(nil, domain.ErrTemplateNotFound)
			err := editor.LoadStored(ctx, "nope", false)
			Expect(errors.Is(err, domain.ErrTemplateNotFound)).To(BeTrue())
		})
	})

	Describe("Save", func() {
		It("stores the file and returns <filename>.json", func() {
			Expect(editor.Load(ctx, "welcome.json", strings.NewReader(sampleFile), false)).To(Succeed())
			Expect(editor.EditTemplate(ctx, "Hey $$name$$")).To(Succeed())

			var stored []byte
			store.EXPECT().Save(gomock.Any(), "welcome", gomock.Any()).DoAndReturn(
				func(_ context.Context, _ string, data []byte) error {
					stored = data
					return nil
				})

			file, err := editor.Save(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(file.Filename).To(Equal("welcome.json"))
			Expect(file.Data).To(Equal(stored))
			Expect(string(file.Data)).To(ContainSubstring(`"template": "Hey $$name$$"`))
			Expect(editor.HasUnsavedChanges()).To(BeFalse())
		})

		It("still hands out the file when the store fails", func() {
			Expect(editor.EditTemplate(ctx, "x")).To(Succeed())
			store.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			file, err := editor.Save(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(file.Stored).To(BeFalse())
			Expect(file.Filename).To(Equal("template.json"))
			Expect(string(file.Data)).To(ContainSubstring(`"template": "x"`))
			Expect(editor.HasUnsavedChanges()).To(BeFalse())
		})

		It("trims the name of an uploaded file", func() {
			Expect(editor.Load(ctx, " welcome.json", strings.NewReader(sampleFile), false)).To(Succeed())
			store.EXPECT().Save(gomock.Any(), "welcome", gomock.Any()).Return(nil)
			file, err := editor.Save(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(file.Filename).To(Equal("welcome.json"))
			Expect(file.Stored).To(BeTrue())
		})

		It("uses the file name set by the user", func() {
			Expect(editor.SetFilename(ctx, "reset-password")).To(Succeed())
			store.EXPECT().Save(gomock.Any(), "reset-password", gomock.Any()).Return(nil)
			file, err := editor.Save(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(file.Filename).To(Equal("reset-password.json"))
		})

		It("round-trips through Load", func() {
			id, _ := editor.AddPlaceholder(ctx, "$$a.b$$")
			Expect(editor.SetTranslation(ctx, id, "ja", "こんにちは")).To(Succeed())
			Expect(editor.EditTemplate(ctx, "<p>$$a.b$$</p>")).To(Succeed())
			store.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			file, err := editor.Save(ctx)
			Expect(err).NotTo(HaveOccurred())

			other := application.NewEditorService(store, entities.OrderLongestFirst)
			Expect(other.Load(ctx, file.Filename, strings.NewReader(string(file.Data)), false)).To(Succeed())
			Expect(other.Render(ctx, "ja")).To(Equal("<p>こんにちは</p>"))
		})
	})

	Describe("DeleteStored", func() {
		It("always asks for confirmation", func() {
			err := editor.DeleteStored(ctx, "welcome", false)
			var confirmErr *domain.ConfirmationError
			Expect(errors.As(err, &confirmErr)).To(BeTrue())
			Expect(confirmErr.Prompt).To(Equal(application.PromptDeleteStored))
		})

		It("removes the stored template and keeps the session", func() {
			Expect(editor.EditTemplate(ctx, "draft")).To(Succeed())
			store.EXPECT().Delete(gomock.Any(), "welcome").Return(nil)
			Expect(editor.DeleteStored(ctx, "welcome", true)).To(Succeed())
			Expect(editor.Snapshot(ctx).Template).To(Equal("draft"))
			Expect(editor.HasUnsavedChanges()).To(BeTrue())
		})

		It("reports unknown templates", func() {
			store.EXPECT().Delete(gomock.Any(), "nope").Return(domain.ErrTemplateNotFound)
			err := editor.DeleteStored(ctx, "nope", true)
			Expect(errors.Is(err, domain.ErrTemplateNotFound)).To(BeTrue())
		})
	})

	Describe("DeletePlaceholder", func() {
		It("requires confirmation and is idempotent", func() {
			id, _ := editor.AddPlaceholder(ctx, "$$a$$")

			err := editor.DeletePlaceholder(ctx, id, false)
			var confirmErr *domain.ConfirmationError
			Expect(errors.As(err, &confirmErr)).To(BeTrue())
			Expect(confirmErr.Prompt).To(Equal(application.PromptDeletePlaceholder))
			Expect(editor.Snapshot(ctx).Placeholders).To(HaveLen(1))

			Expect(editor.DeletePlaceholder(ctx, id, true)).To(Succeed())
			Expect(editor.DeletePlaceholder(ctx, id, true)).To(Succeed())
			Expect(editor.Snapshot(ctx).Placeholders).To(BeEmpty())
		})
	})

	Describe("preview", func() {
		BeforeEach(func() {
			Expect(editor.Load(ctx, "welcome.json", strings.NewReader(sampleFile), false)).To(Succeed())
		})

		It("selects the first locale when entering the preview", func() {
			p, err := editor.SwitchView(ctx, entities.ViewPreview)
			Expect(err).NotTo(HaveOccurred())
			Expect(localeOf(p)).To(Equal("fr"))
			Expect(p.Source).To(Equal("Hi Bonjour, bye Bonjour"))
		})

		It("keeps a selected locale across tab switches", func() {
			_, err := editor.SelectPreviewLocale(ctx, "en")
			Expect(err).NotTo(HaveOccurred())
			_, err = editor.SwitchView(ctx, entities.ViewSettings)
			Expect(err).NotTo(HaveOccurred())
			p, err := editor.SwitchView(ctx, entities.ViewPreview)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Source).To(Equal("Hi Hello, bye Hello"))
		})

		It("shows the raw template without locales", func() {
			Expect(editor.NewTemplate(ctx, true)).To(Succeed())
			Expect(editor.EditTemplate(ctx, "raw $$x$$")).To(Succeed())
			p, err := editor.SwitchView(ctx, entities.ViewPreview)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Locale).To(BeNil())
			Expect(p.Source).To(Equal("raw $$x$$"))
		})

		It("rejects unknown views and locales", func() {
			_, err := editor.SwitchView(ctx, entities.View("source"))
			Expect(errors.Is(err, domain.ErrInvalidView)).To(BeTrue())
			_, err = editor.SelectPreviewLocale(ctx, "de")
			Expect(errors.Is(err, domain.ErrInvalidLocale)).To(BeTrue())
		})

		It("drops the selection when its locale is removed", func() {
			_, err := editor.SelectPreviewLocale(ctx, "en")
			Expect(err).NotTo(HaveOccurred())
			Expect(editor.RemoveLocale(ctx, "en")).To(Succeed())
			Expect(editor.Preview(ctx).Locale).To(BeNil())
			Expect(editor.Preview(ctx).Source).To(Equal("Hi $$name$$, bye $$name$$"))
		})

		It("renders without touching the stored template", func() {
			Expect(editor.Render(ctx, "fr")).To(Equal("Hi Bonjour, bye Bonjour"))
			Expect(editor.Render(ctx, "")).To(Equal("Hi $$name$$, bye $$name$$"))
			Expect(editor.Snapshot(ctx).Template).To(Equal("Hi $$name$$, bye $$name$$"))
		})
	})
})
