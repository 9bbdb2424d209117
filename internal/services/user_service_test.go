package services

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/sensordash/backend/internal/domain/entities"
	"github.com/sensordash/backend/internal/domain/errors"
	"github.com/sensordash/backend/internal/domain/ports"
)

var _ = Describe("UserService", func() {
	var (
		repo      *fakeUserRepo
		publisher *fakePublisher
		service   *UserService
		ctx       context.Context
	)

	BeforeEach(func() {
		repo = newFakeUserRepo()
		publisher = &fakePublisher{}
		service = NewUserService(repo, publisher, noopLogger{})
		ctx = context.Background()
	})

	create := func(nome, email, senha string) *entities.User {
		user, err := service.CreateUser(ctx, CreateUserInput{
			Nome:  nome,
			Email: email,
			Senha: senha,
		})
		Expect(err).NotTo(HaveOccurred())
		return user
	}

	Describe("CreateUser", func() {
		It("atribui id 1 quando a coleção está vazia", func() {
			user := create("Maria", "maria@exemplo.com", "segredo")
			Expect(user.ID).To(Equal(int64(1)))
		})

		It("atribui id max+1", func() {
			create("Maria", "maria@exemplo.com", "segredo")
			create("João", "joao@exemplo.com", "segredo")

			user := create("Ana", "ana@exemplo.com", "segredo")
			Expect(user.ID).To(Equal(int64(3)))
		})

		It("normaliza o email com trim e lowercase", func() {
			user := create("Ana", " Ana@X.com ", "abc123")
			Expect(user.Email.String()).To(Equal("ana@x.com"))
		})

		It("aplica os defaults de função e status", func() {
			user := create("Ana", "ana@x.com", "abc123")
			Expect(user.Funcao).To(Equal(entities.FuncaoOperador))
			Expect(user.Status).To(Equal(entities.StatusAtivo))
		})

		It("respeita função e status fornecidos", func() {
			user, err := service.CreateUser(ctx, CreateUserInput{
				Nome:   "Ana",
				Email:  "ana@x.com",
				Senha:  "abc123",
				Funcao: "Administrador",
				Status: "Inativo",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Funcao).To(Equal(entities.FuncaoAdministrador))
			Expect(user.Status).To(Equal(entities.StatusInativo))
		})

		It("guarda hash bcrypt, nunca a senha em claro", func() {
			user := create("Ana", "ana@x.com", "abc123")
			Expect(user.SenhaHash).NotTo(Equal("abc123"))
			Expect(bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte("abc123"))).To(Succeed())
		})

		It("rejeita nome só de espaços como campo ausente", func() {
			_, err := service.CreateUser(ctx, CreateUserInput{
				Nome:  "   ",
				Email: "ana@x.com",
				Senha: "abc123",
			})
			Expect(err).To(MatchError(entities.ErrNomeRequired))
		})

		It("rejeita email duplicado independente de caixa e espaços", func() {
			create("Ana", "ana@x.com", "abc123")

			_, err := service.CreateUser(ctx, CreateUserInput{
				Nome:  "Outra Ana",
				Email: " ANA@X.com ",
				Senha: "outra",
			})
			Expect(err).To(MatchError(errors.ErrEmailAlreadyExists))
		})

		It("publica o evento de criação sem a senha", func() {
			create("Ana", "ana@x.com", "abc123")

			Expect(publisher.events).To(HaveLen(1))
			Expect(publisher.events[0].Type).To(Equal(ports.EventUserCreated))

			payload, ok := publisher.events[0].Data.(userEvent)
			Expect(ok).To(BeTrue())
			Expect(payload.Email).To(Equal("ana@x.com"))
		})
	})

	Describe("UpdateUser", func() {
		It("retorna not found para id desconhecido", func() {
			_, err := service.UpdateUser(ctx, 42, UpdateUserInput{Nome: "X", Email: "x@x.com"})
			Expect(err).To(MatchError(errors.ErrUserNotFound))
		})

		It("permite manter o próprio email", func() {
			user := create("Ana", "ana@x.com", "abc123")

			updated, err := service.UpdateUser(ctx, user.ID, UpdateUserInput{
				Nome:  "Ana Oliveira",
				Email: "ANA@x.com",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Nome).To(Equal("Ana Oliveira"))
			Expect(updated.Email.String()).To(Equal("ana@x.com"))
		})

		It("rejeita nome só de espaços sem tocar o documento", func() {
			user := create("Ana", "ana@x.com", "abc123")

			_, err := service.UpdateUser(ctx, user.ID, UpdateUserInput{
				Nome:  "   ",
				Email: "ana@x.com",
			})
			Expect(err).To(MatchError(entities.ErrNomeRequired))

			stored, err := repo.FindByID(ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Nome).To(Equal("Ana"))
		})

		It("rejeita email de outro usuário", func() {
			create("Ana", "ana@x.com", "abc123")
			user := create("João", "joao@x.com", "abc123")

			_, err := service.UpdateUser(ctx, user.ID, UpdateUserInput{
				Nome:  "João",
				Email: "Ana@X.com",
			})
			Expect(err).To(MatchError(errors.ErrEmailAlreadyExists))
		})

		It("rejeita senha sem confirmação idêntica e mantém o hash", func() {
			user := create("Ana", "ana@x.com", "abc123")
			originalHash := user.SenhaHash

			_, err := service.UpdateUser(ctx, user.ID, UpdateUserInput{
				Nome:           "Ana",
				Email:          "ana@x.com",
				Senha:          "nova",
				ConfirmarSenha: "diferente",
			})
			Expect(err).To(MatchError(errors.ErrPasswordMismatch))

			stored, _ := repo.FindByID(ctx, user.ID)
			Expect(stored.SenhaHash).To(Equal(originalHash))
		})

		It("troca a senha quando a confirmação coincide", func() {
			user := create("Ana", "ana@x.com", "abc123")

			_, err := service.UpdateUser(ctx, user.ID, UpdateUserInput{
				Nome:           "Ana",
				Email:          "ana@x.com",
				Senha:          "nova-senha",
				ConfirmarSenha: "nova-senha",
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Authenticate(ctx, "ana@x.com", "nova-senha")
			Expect(err).NotTo(HaveOccurred())
		})

		It("mantém função e status quando omitidos", func() {
			user, err := service.CreateUser(ctx, CreateUserInput{
				Nome:   "Ana",
				Email:  "ana@x.com",
				Senha:  "abc123",
				Funcao: "Administrador",
			})
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.UpdateUser(ctx, user.ID, UpdateUserInput{
				Nome:  "Ana",
				Email: "ana@x.com",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Funcao).To(Equal(entities.FuncaoAdministrador))
			Expect(updated.Status).To(Equal(entities.StatusAtivo))
		})
	})

	Describe("DeleteUser", func() {
		It("remove e reporta not found na segunda tentativa", func() {
			user := create("Ana", "ana@x.com", "abc123")

			Expect(service.DeleteUser(ctx, user.ID)).To(Succeed())
			Expect(service.DeleteUser(ctx, user.ID)).To(MatchError(errors.ErrUserNotFound))
		})

		It("não realoca ids após exclusão de usuário intermediário", func() {
			create("Maria", "maria@x.com", "abc123")
			second := create("João", "joao@x.com", "abc123")
			create("Ana", "ana@x.com", "abc123")

			Expect(service.DeleteUser(ctx, second.ID)).To(Succeed())

			user := create("Pedro", "pedro@x.com", "abc123")
			Expect(user.ID).To(Equal(int64(4)))
		})
	})

	Describe("Authenticate", func() {
		BeforeEach(func() {
			create("Ana", "ana@x.com", "abc123")
		})

		It("retorna o usuário com credenciais corretas", func() {
			user, err := service.Authenticate(ctx, " Ana@X.com ", "abc123")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Nome).To(Equal("Ana"))
		})

		It("retorna erro de autenticação para senha errada", func() {
			_, err := service.Authenticate(ctx, "ana@x.com", "errada")
			Expect(err).To(MatchError(errors.ErrInvalidCredentials))
		})

		It("retorna erro de autenticação para email desconhecido", func() {
			_, err := service.Authenticate(ctx, "ninguem@x.com", "abc123")
			Expect(err).To(MatchError(errors.ErrInvalidCredentials))
		})
	})
})
